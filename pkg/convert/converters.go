package convert

import (
	"github.com/goliatone/go-recordconv/pkg/avro"
	"github.com/goliatone/go-recordconv/pkg/esmapping"
	"github.com/goliatone/go-recordconv/pkg/jsonschema"
	"github.com/goliatone/go-recordconv/pkg/record"
	"github.com/goliatone/go-recordconv/pkg/sqltable"
)

type avroConverter struct{}

func (avroConverter) Name() string { return "avro" }

func (avroConverter) Convert(typ *record.Type, req Request) (any, error) {
	return avro.Convert(typ, avro.Options{
		Context:   req.Context,
		Namespace: req.Namespace,
		Include:   req.Include,
		Exclude:   req.Exclude,
	})
}

type esMappingConverter struct{}

func (esMappingConverter) Name() string { return "esmapping" }

func (esMappingConverter) Convert(typ *record.Type, req Request) (any, error) {
	return esmapping.Convert(typ, esmapping.Options{
		Context: req.Context,
		Include: req.Include,
		Exclude: req.Exclude,
	})
}

type jsonSchemaConverter struct{}

func (jsonSchemaConverter) Name() string { return "jsonschema" }

func (jsonSchemaConverter) Convert(typ *record.Type, req Request) (any, error) {
	return jsonschema.Convert(typ, jsonschema.Options{
		Context:  req.Context,
		Mode:     req.Mode,
		Include:  req.Include,
		Exclude:  req.Exclude,
		Nullable: req.Nullable,
	})
}

type sqlTableConverter struct{}

func (sqlTableConverter) Name() string { return "sqltable" }

func (sqlTableConverter) Convert(typ *record.Type, req Request) (any, error) {
	return sqltable.Convert(typ, sqltable.Options{
		Context: req.Context,
		Name:    req.TableName,
		Include: req.Include,
		Exclude: req.Exclude,
	})
}
