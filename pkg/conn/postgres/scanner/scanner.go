package scanner

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

type Queryer interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// Scanner converts pgx.Rows into []T without hand-written Scan calls.
//
// # example
//
//	type Ingredient struct {
//		Id   int
//		Name string
//	}
//
//	func GetAllIngredients(ctx context.Context, conn Queryer) ([]Ingredient, error) {
//		return scanner.New[Ingredient]().QueryAll(
//			ctx, conn, `select "id", "name" from "ingredient"`,
//		)
//	}
//
// # mapping rule
//
// Each column is scanned into the field
//
//  1. tagged `sql:"column_name"`,
//  2. or named exactly as the column,
//  3. or named as the CamelCase form of the column name.
type Scanner[T any] interface {
	// ScanAll reads rows to the end and converts each into T.
	ScanAll(pgx.Rows) ([]T, error)

	// QueryAll sends a query and scans the whole response.
	QueryAll(context.Context, Queryer, string, ...any) ([]T, error)
}

// New builds a Scanner for T.
//
// When T is a primitive, a time.Time or a []byte, rows are expected to
// have a single column. Otherwise T must be a struct following the
// mapping rule of Scanner.
func New[T any]() Scanner[T] {
	t := reflect.TypeOf(*new(T))

	if t.AssignableTo(reflect.TypeOf(time.Time{})) || t.AssignableTo(reflect.TypeOf([]byte{})) {
		return scalarScanner[T]{}
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return scalarScanner[T]{}
	}

	idx := fieldIndex{
		byTag:  map[string]reflect.StructField{},
		byName: map[string]reflect.StructField{},
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		idx.byName[f.Name] = f
		if tag, ok := f.Tag.Lookup("sql"); ok {
			idx.byTag[tag] = f
		}
	}

	return structScanner[T]{index: idx}
}

// fieldIndex resolves a sql column name to a struct field.
type fieldIndex struct {
	byTag  map[string]reflect.StructField
	byName map[string]reflect.StructField
}

func (idx fieldIndex) resolve(column string) (reflect.StructField, bool) {
	if f, ok := idx.byTag[column]; ok {
		return f, true
	}
	if f, ok := idx.byName[column]; ok {
		return f, true
	}
	f, ok := idx.byName[camelCase(column)]
	return f, ok
}

// camelCase converts a snake_case column name to CamelCase.
func camelCase(s string) string {
	b := new(strings.Builder)
	for _, word := range strings.Split(s, "_") {
		if word == "" {
			b.WriteString("_")
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}

type structScanner[T any] struct {
	index fieldIndex
}

func (s structScanner[T]) ScanAll(rows pgx.Rows) ([]T, error) {
	columns := rows.FieldDescriptions()
	fields := make([]reflect.StructField, 0, len(columns))
	for _, fd := range columns {
		col := string(fd.Name)
		f, ok := s.index.resolve(col)
		if !ok {
			return nil, fmt.Errorf(
				`field for column "%s" is not found in type "%T"`, col, *new(T),
			)
		}
		fields = append(fields, f)
	}

	ret := make([]T, 0, rows.CommandTag().RowsAffected())
	for rows.Next() {
		elem := new(T)
		ev := reflect.ValueOf(elem).Elem()

		dest := make([]any, len(fields))
		for nth, f := range fields {
			dest[nth] = ev.FieldByName(f.Name).Addr().Interface()
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ret = append(ret, *elem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s structScanner[T]) QueryAll(ctx context.Context, conn Queryer, q string, params ...any) ([]T, error) {
	rows, err := conn.Query(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.ScanAll(rows)
}

type scalarScanner[T any] struct{}

func (s scalarScanner[T]) ScanAll(rows pgx.Rows) ([]T, error) {
	columns := rows.FieldDescriptions()
	if len(columns) != 1 {
		return nil, fmt.Errorf(
			"too much columns for %s", reflect.TypeOf(*new(T)).Name(),
		)
	}

	ret := make([]T, 0, rows.CommandTag().RowsAffected())
	for rows.Next() {
		elem := new(T)
		field := reflect.ValueOf(elem).Elem()

		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		for nth, v := range values {
			if rv := reflect.ValueOf(v); !rv.CanConvert(field.Type()) {
				return nil, fmt.Errorf(
					`field "%s" (type: %s in sql, %T in golang) can not be converted to "%T"`,
					columns[nth].Name, oidName(columns[nth].DataTypeOID), v, *elem,
				)
			}
			field.Set(reflect.ValueOf(v).Convert(field.Type()))
		}

		ret = append(ret, *elem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s scalarScanner[T]) QueryAll(ctx context.Context, conn Queryer, q string, params ...any) ([]T, error) {
	rows, err := conn.Query(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.ScanAll(rows)
}

var oidNames = map[uint32]string{
	pgtype.BoolOID:         "bool",
	pgtype.ByteaOID:        "bytea",
	pgtype.Int2OID:         "int2",
	pgtype.Int4OID:         "int4",
	pgtype.Int8OID:         "int8",
	pgtype.TextOID:         "text",
	pgtype.VarcharOID:      "varchar",
	pgtype.JSONOID:         "json",
	pgtype.JSONBOID:        "jsonb",
	pgtype.Float4OID:       "float4",
	pgtype.Float8OID:       "float8",
	pgtype.DateOID:         "date",
	pgtype.TimeOID:         "time",
	pgtype.TimestampOID:    "timestamp",
	pgtype.TimestamptzOID:  "timestamptz",
	pgtype.IntervalOID:     "interval",
	pgtype.NumericOID:      "numeric",
	pgtype.UUIDOID:         "uuid",
	pgtype.BoolArrayOID:    "bool[]",
	pgtype.Int2ArrayOID:    "int2[]",
	pgtype.Int4ArrayOID:    "int4[]",
	pgtype.Int8ArrayOID:    "int8[]",
	pgtype.TextArrayOID:    "text[]",
	pgtype.VarcharArrayOID: "varchar[]",
}

func oidName(oid uint32) string {
	if name, ok := oidNames[oid]; ok {
		return name
	}
	return fmt.Sprintf("undefined oid(%d)", oid)
}
