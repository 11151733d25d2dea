package pkg

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/simp-lee/bookstore/internal/domain"
)

// BSON compiles pred into a MongoDB filter document. A match-all predicate
// yields an empty document; several conditions are combined under $and.
func BSON(pred domain.Predicate) bson.D {
	conds := pred.Conditions()
	switch len(conds) {
	case 0:
		return bson.D{}
	case 1:
		return bson.D{bsonCondition(conds[0])}
	}

	clauses := make(bson.A, 0, len(conds))
	for _, c := range conds {
		clauses = append(clauses, bson.D{bsonCondition(c)})
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

func bsonCondition(c domain.Condition) bson.E {
	field := c.Field
	if field == domain.BookFieldID {
		field = "_id"
	}
	if c.Op == domain.OpContainsFold {
		return bson.E{Key: field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(c.Value), Options: "i"}}
	}
	return bson.E{Key: field, Value: c.Value}
}

// BSONSort compiles s into a sort document that breaks ties by ascending
// _id. Fields outside allowed are ignored.
func BSONSort(s domain.SortOrder, allowed []string) bson.D {
	order := NormalizeSort(s, allowed)
	dir := 1
	if order.Desc {
		dir = -1
	}
	if order.Field == "" || order.Field == domain.BookFieldID {
		return bson.D{{Key: "_id", Value: dir}}
	}
	return bson.D{{Key: order.Field, Value: dir}, {Key: "_id", Value: 1}}
}
