package repository

import (
	"strings"

	"gorm.io/gorm"
)

// ListParams is a normalized page request. Page and Limit are >= 1.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// paginate counts q, then loads the requested page newest-first into dest.
// Relation scopes only apply to the page query.
func paginate(q *gorm.DB, p ListParams, dest any, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	err := q.Session(&gorm.Session{}).
		Scopes(scopes...).
		Order("created_at DESC").
		Offset(p.offset()).
		Limit(p.Limit).
		Find(dest).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern turns a user term into a lower-cased LIKE substring pattern
// with the wildcards in the term escaped.
func searchPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// likeClause matches col case-insensitively against a searchPattern value.
func likeClause(col string) string {
	return "LOWER(" + col + `) LIKE ? ESCAPE '\'`
}
