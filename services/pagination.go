package services

import (
	"strconv"
	"strings"

	"github.com/mohammedmirzada/order-tracking/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 1000
)

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Page is the list envelope every collection endpoint returns.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// ListQuery holds raw page/limit/search query values.
type ListQuery struct {
	Page   string
	Limit  string
	Search string
}

// Params normalizes the raw values. Unparsable or non-positive numbers fall
// back to the defaults and limit is capped at MaxLimit.
func (q ListQuery) Params() repository.ListParams {
	return repository.ListParams{
		Page:   positiveOr(q.Page, DefaultPage, 0),
		Limit:  positiveOr(q.Limit, DefaultLimit, MaxLimit),
		Search: strings.TrimSpace(q.Search),
	}
}

func positiveOr(raw string, fallback, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

func newPage[T any](data []T, total int64, p repository.ListParams) *Page[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return &Page[T]{
		Data: data,
		Meta: PageMeta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages},
	}
}
