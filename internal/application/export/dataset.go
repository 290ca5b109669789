// Package export convierte los reportes en tablas planas y las serializa con
// el writer del formato pedido (CSV, XLSX o PDF).
package export

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ColumnKind indica cómo debe formatear el writer una columna.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumber
	KindMoney
	KindPercent
	KindDate
)

// Column columna de un Dataset. Key es la clave JSON del registro.
type Column struct {
	Key  string
	Kind ColumnKind
}

// Dataset tabla plana lista para exportar.
//
// Cada celda es nil (vacía), string, int64, decimal.Decimal o time.Time.
type Dataset struct {
	Title   string
	Columns []Column
	Rows    [][]any
}

// Kinds marca columnas por clave; las no marcadas son texto.
type Kinds map[string]ColumnKind

// optional lo cumplen los tipos opcionales del dominio (Recency, DaysRemaining).
type optional interface {
	Days() (int, bool)
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// FromRecords aplana una lista de structs. Las columnas son las claves JSON de
// T en el orden de declaración; los campos con json:"-" se omiten.
func FromRecords[T any](title string, records []T, kinds Kinds) (Dataset, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return Dataset{}, fmt.Errorf("export: %s no es un struct", t)
	}

	type field struct {
		index int
		key   string
	}
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := strings.Split(f.Tag.Get("json"), ",")[0]
		if key == "-" {
			continue
		}
		if key == "" {
			key = f.Name
		}
		fields = append(fields, field{index: i, key: key})
	}

	ds := Dataset{
		Title:   title,
		Columns: make([]Column, 0, len(fields)),
		Rows:    make([][]any, 0, len(records)),
	}
	for _, f := range fields {
		ds.Columns = append(ds.Columns, Column{Key: f.key, Kind: kinds[f.key]})
	}
	for _, r := range records {
		v := reflect.ValueOf(r)
		row := make([]any, 0, len(fields))
		for _, f := range fields {
			row = append(row, cell(v.Field(f.index)))
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// cell normaliza un valor a uno de los tipos de celda.
func cell(v reflect.Value) any {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if o, ok := v.Interface().(optional); ok {
		days, known := o.Days()
		if !known {
			return nil
		}
		return int64(days)
	}
	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time)
	case decimalType:
		return v.Interface().(decimal.Decimal)
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.String:
		return v.String()
	case reflect.Bool:
		if v.Bool() {
			return "sí"
		}
		return "no"
	default:
		return fmt.Sprint(v.Interface())
	}
}
