// Package query translates URL query parameters into MongoDB queries with
// filtering, field selection, sorting, pagination and optional population of
// referenced documents.
package query

import (
	"context"
	"reflect"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = int64(1)
	DefaultLimit = int64(25)
)

// Reserved parameter names that shape the query instead of filtering fields.
var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// Comparison operators accepted in bracket syntax, e.g. averageRating[gte]=8.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Options is a parsed list query ready to run against a collection.
type Options struct {
	Filter     bson.M
	Projection bson.D
	Sort       bson.D
	Page       int64
	Limit      int64
	Skip       int64
}

// Populate describes a $lookup of referenced documents into the results.
type Populate struct {
	From         string   // collection to join
	LocalField   string   // field on the queried collection
	ForeignField string   // field on the joined collection
	As           string   // output field
	Select       []string // optional sub-selection of joined fields
	Single       bool     // unwind to a single document instead of an array
}

// PageRef is one pagination cursor in the response envelope.
type PageRef struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Pagination carries the next/prev cursors; each is present only when that
// page exists.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Parse turns raw query-string values into query Options. Malformed page and
// limit values fall back to defaults; unknown filter keys pass through to the
// store untouched. Keys that could inject operators ($-prefixed or dotted)
// are dropped.
func Parse(values map[string]string) Options {
	opts := Options{
		Filter: bson.M{},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, value := range values {
		if reserved[key] {
			continue
		}
		field, op := splitOperator(key)
		if field == "" || strings.HasPrefix(field, "$") || strings.Contains(field, ".") {
			continue
		}
		if op == "" {
			opts.Filter[field] = equalityValue(value)
			continue
		}
		mongoOp, ok := operators[op]
		if !ok {
			continue
		}
		cond, isCond := opts.Filter[field].(bson.M)
		if !isCond {
			cond = bson.M{}
			opts.Filter[field] = cond
		}
		if mongoOp == "$in" {
			cond[mongoOp] = coerceList(value)
		} else {
			cond[mongoOp] = coerce(value)
		}
	}

	if sel, ok := values["select"]; ok && sel != "" {
		for _, field := range strings.Split(sel, ",") {
			if field = strings.TrimSpace(field); field != "" {
				opts.Projection = append(opts.Projection, bson.E{Key: field, Value: 1})
			}
		}
	}

	if sort, ok := values["sort"]; ok && sort != "" {
		for _, field := range strings.Split(sort, ",") {
			if field = strings.TrimSpace(field); field == "" {
				continue
			}
			order := 1
			if strings.HasPrefix(field, "-") {
				order = -1
				field = field[1:]
			}
			opts.Sort = append(opts.Sort, bson.E{Key: field, Value: order})
		}
	}
	if len(opts.Sort) == 0 {
		opts.Sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	if page, err := strconv.ParseInt(values["page"], 10, 64); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.ParseInt(values["limit"], 10, 64); err == nil && limit > 0 {
		opts.Limit = limit
	}
	opts.Skip = (opts.Page - 1) * opts.Limit

	return opts
}

// splitOperator separates "field[op]" into field and op. A key without
// brackets returns the key itself and an empty op.
func splitOperator(key string) (string, string) {
	open := strings.Index(key, "[")
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

// equalityValue builds the match for a bare key=value filter. Without a
// schema the value's target type is unknown: a numeric-looking value may
// belong to a string field (a phone number, a zip code), so values that
// coerce away from their text form match either representation.
func equalityValue(value string) interface{} {
	coerced := coerce(value)
	if s, ok := coerced.(string); ok {
		return s
	}
	return bson.M{"$in": []interface{}{coerced, value}}
}

// coerce converts a filter value to the type Mongo should compare with.
// Mongoose did this through schema casting; the raw driver needs it explicit
// so that range operators compare numerically.
func coerce(value string) interface{} {
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func coerceList(value string) []interface{} {
	parts := strings.Split(value, ",")
	out := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		out = append(out, coerce(strings.TrimSpace(p)))
	}
	return out
}

// Paginate computes the next/prev cursors for a page given the total number
// of matching documents.
func (o Options) Paginate(total int64) Pagination {
	var p Pagination
	if o.Skip+o.Limit < total {
		p.Next = &PageRef{Page: o.Page + 1, Limit: o.Limit}
	}
	if o.Page > 1 {
		p.Prev = &PageRef{Page: o.Page - 1, Limit: o.Limit}
	}
	return p
}

// Result is the list-query outcome consumed by the response envelope. Count
// is the number of documents in the returned page, never the total match
// count; the total only determines the pagination cursors.
type Result struct {
	Count      int64
	Pagination Pagination
}

// Find runs a parsed query against a collection and decodes the current page
// into results. When populate is non-nil the query runs as an aggregation
// with a $lookup stage so referenced documents are resolved inline.
func Find(ctx context.Context, coll *mongo.Collection, values map[string]string, populate *Populate, results interface{}) (*Result, error) {
	opts := Parse(values)

	total, err := coll.CountDocuments(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	var cursor *mongo.Cursor
	if populate != nil {
		cursor, err = coll.Aggregate(ctx, opts.pipeline(populate))
	} else {
		findOpts := options.Find().
			SetSort(opts.Sort).
			SetSkip(opts.Skip).
			SetLimit(opts.Limit)
		if len(opts.Projection) > 0 {
			findOpts.SetProjection(opts.Projection)
		}
		cursor, err = coll.Find(ctx, opts.Filter, findOpts)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return nil, err
	}

	pageLen := reflect.ValueOf(results).Elem().Len()
	return &Result{Count: int64(pageLen), Pagination: opts.Paginate(total)}, nil
}

// pipeline builds the aggregation equivalent of the Find path plus a $lookup
// stage resolving the referenced documents.
func (o Options) pipeline(populate *Populate) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: o.Filter}},
		{{Key: "$sort", Value: o.Sort}},
		{{Key: "$skip", Value: o.Skip}},
		{{Key: "$limit", Value: o.Limit}},
	}

	lookup := bson.D{
		{Key: "from", Value: populate.From},
		{Key: "localField", Value: populate.LocalField},
		{Key: "foreignField", Value: populate.ForeignField},
		{Key: "as", Value: populate.As},
	}
	if len(populate.Select) > 0 {
		inner := bson.D{}
		for _, field := range populate.Select {
			inner = append(inner, bson.E{Key: field, Value: 1})
		}
		lookup = append(lookup, bson.E{Key: "pipeline", Value: mongo.Pipeline{
			{{Key: "$project", Value: inner}},
		}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: lookup}})

	if populate.Single {
		pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + populate.As},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}})
	}

	if len(o.Projection) > 0 {
		proj := append(bson.D{}, o.Projection...)
		proj = append(proj, bson.E{Key: populate.As, Value: 1})
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: proj}})
	}

	return pipeline
}
