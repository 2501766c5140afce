package psqlbuilder

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// builder squirrel с плейсхолдерами PostgreSQL ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}

// EscapeLike экранирует спецсимволы LIKE, так что value сравнивается буквально
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// ContainsAny условие "хотя бы одна из колонок содержит value" без учета регистра
func ContainsAny(value string, columns ...string) squirrel.Or {
	pattern := "%" + EscapeLike(value) + "%"

	or := make(squirrel.Or, 0, len(columns))
	for _, column := range columns {
		or = append(or, squirrel.Expr(column+` ILIKE ? ESCAPE '\'`, pattern))
	}
	return or
}
