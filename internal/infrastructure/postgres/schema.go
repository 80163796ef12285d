package postgres

import (
	"context"
	"fmt"
)

// esquema es el DDL idempotente de la base. Los documentos con forma
// histórica variable (actividades de folio, definición de categoría, datos de
// tarea) van en columnas jsonb y se interpretan en el dominio, nunca en SQL.
const esquema = `
CREATE TABLE IF NOT EXISTS actividades (
	clave      text PRIMARY KEY,
	definicion jsonb NOT NULL
);

CREATE TABLE IF NOT EXISTS folios (
	id          text PRIMARY KEY,
	usuario     text NOT NULL,
	sucursal    text NOT NULL,
	fecha       text NOT NULL,
	coordenadas text NOT NULL DEFAULT '',
	lat         double precision,
	lng         double precision,
	actividades jsonb NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS folios_fecha_idx ON folios (fecha);
CREATE INDEX IF NOT EXISTS folios_sucursal_idx ON folios (sucursal);

CREATE TABLE IF NOT EXISTS marcas (
	id      text PRIMARY KEY,
	usuario text NOT NULL DEFAULT '',
	email   text NOT NULL DEFAULT '',
	tipo    text NOT NULL,
	fecha   text NOT NULL,
	foto    text NOT NULL DEFAULT '',
	lat     double precision NOT NULL DEFAULT 0,
	lng     double precision NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS marcas_fecha_idx ON marcas (fecha);

CREATE TABLE IF NOT EXISTS tareas (
	id    text PRIMARY KEY,
	datos jsonb NOT NULL
);

CREATE TABLE IF NOT EXISTS usuarios (
	uid           text PRIMARY KEY,
	email         text NOT NULL UNIQUE,
	nombre        text NOT NULL DEFAULT '',
	rol           text NOT NULL,
	activo        boolean NOT NULL DEFAULT true,
	password_hash text NOT NULL,
	creado_en     timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS roles_asignados (
	email_clave text PRIMARY KEY,
	rol         text NOT NULL
);

CREATE TABLE IF NOT EXISTS ubicaciones (
	nombre text PRIMARY KEY
);
`

// EnsureSchema aplica el DDL al arrancar.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, esquema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
