package repository

import (
	"github.com/doug-martin/goqu/v9"
)

type queryBuilderImpl struct {
	conditions map[string]interface{}
}

func NewQueryBuilder() QueryBuilder {
	return &queryBuilderImpl{
		conditions: make(map[string]interface{}),
	}
}

// AddCondition ignores nil values so optional filters can be passed through
// unchecked.
func (q *queryBuilderImpl) AddCondition(key string, value interface{}) {
	if value == nil {
		return
	}
	q.conditions[key] = value
}

func (q *queryBuilderImpl) BuildConditions(aliases map[string]string) goqu.Ex {
	conditions := goqu.Ex{}
	for key, value := range q.conditions {
		column := key
		if alias, ok := aliases[key]; ok {
			column = alias
		}
		conditions[column] = value
	}
	return conditions
}
