package model

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/vpi"
)

const sqliteSchema = `
CREATE TABLE designs (
	id         INTEGER PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	elaborated INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE objects (
	id        INTEGER PRIMARY KEY,
	design_id INTEGER NOT NULL REFERENCES designs(id),
	parent_id INTEGER REFERENCES objects(id),
	rel       TEXT NOT NULL DEFAULT '',
	kind      TEXT NOT NULL,
	name      TEXT,
	full_name TEXT,
	def_name  TEXT,
	file      TEXT,
	line      INTEGER NOT NULL DEFAULT 0,
	col       INTEGER NOT NULL DEFAULT 0,
	size      INTEGER,
	def_file  TEXT,
	def_line  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX objects_parent ON objects(parent_id);
`

// rel values for objects attached directly to a design
const (
	relAllModules = "allModules"
	relTopModules = "topModules"
)

func readSQLite(path string) ([]*object, error) {
	// sql.Open would create a missing database file
	if _, err := os.Stat(path); err != nil {
		return nil, errors.IO(errors.PhaseRestore, "open design database", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.IO(errors.PhaseRestore, "open design database", err)
	}
	defer db.Close()

	designs, byID, err := readDesignRows(db)
	if err != nil {
		return nil, err
	}
	if err := readObjectRows(db, byID); err != nil {
		return nil, err
	}
	return designs, nil
}

func readDesignRows(db *sql.DB) ([]*object, map[int64]*object, error) {
	rows, err := db.Query(`SELECT id, name, elaborated FROM designs ORDER BY id`)
	if err != nil {
		return nil, nil, errors.ParseFailed("design table", err)
	}
	defer rows.Close()

	var designs []*object
	byID := make(map[int64]*object)
	for rows.Next() {
		var (
			id         int64
			name       string
			elaborated bool
		)
		if err := rows.Scan(&id, &name, &elaborated); err != nil {
			return nil, nil, errors.ParseFailed("design row", err)
		}
		d := newObject(vpi.KindDesign)
		d.name = name
		d.elaborated = elaborated
		designs = append(designs, d)
		byID[id] = d
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.ParseFailed("design table", err)
	}
	return designs, byID, nil
}

// readObjectRows attaches objects to designs. Rows are read in id order,
// and a parent always has a lower id than its children.
func readObjectRows(db *sql.DB, designs map[int64]*object) error {
	rows, err := db.Query(`SELECT id, design_id, parent_id, rel, kind, name, full_name,
		def_name, file, line, col, size, def_file, def_line FROM objects ORDER BY id`)
	if err != nil {
		return errors.ParseFailed("object table", err)
	}
	defer rows.Close()

	objects := make(map[int64]*object)
	for rows.Next() {
		var (
			id, designID                           int64
			parentID, size                         sql.NullInt64
			rel, kindName                          string
			name, fullName, defName, file, defFile sql.NullString
			line, col, defLine                     int
		)
		if err := rows.Scan(&id, &designID, &parentID, &rel, &kindName, &name, &fullName,
			&defName, &file, &line, &col, &size, &defFile, &defLine); err != nil {
			return errors.ParseFailed("object row", err)
		}

		rowPath := []string{"objects", fmt.Sprint(id)}
		kind, ok := vpi.ParseKind(kindName)
		if !ok || kind == vpi.KindDesign {
			return errors.InvalidData(errors.PhaseRestore, rowPath, fmt.Sprintf("unknown kind %q", kindName))
		}

		o := newObject(kind)
		o.name = name.String
		o.fullName = fullName.String
		o.defName = defName.String
		o.file = file.String
		o.defFile = defFile.String
		o.line = line
		o.column = col
		o.defLine = defLine
		if size.Valid {
			o.size = size.Int64
		}

		if parentID.Valid {
			parent, ok := objects[parentID.Int64]
			if !ok {
				return errors.InvalidData(errors.PhaseRestore, rowPath, fmt.Sprintf("parent %d not found", parentID.Int64))
			}
			parent.children = append(parent.children, o)
		} else {
			d, ok := designs[designID]
			if !ok {
				return errors.InvalidData(errors.PhaseRestore, rowPath, fmt.Sprintf("design %d not found", designID))
			}
			switch rel {
			case relAllModules:
				d.allModules = append(d.allModules, o)
			case relTopModules:
				d.topModules = append(d.topModules, o)
			default:
				return errors.InvalidData(errors.PhaseRestore, rowPath, fmt.Sprintf("unknown design relation %q", rel))
			}
		}
		objects[id] = o
	}
	if err := rows.Err(); err != nil {
		return errors.ParseFailed("object table", err)
	}
	return nil
}

func writeSQLite(path string, designs []*object) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.IO(errors.PhaseEncode, "replace design database", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.IO(errors.PhaseEncode, "create design database", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return errors.IO(errors.PhaseEncode, "begin transaction", err)
	}
	if err := writeRows(tx, designs); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.IO(errors.PhaseEncode, "commit design database", err)
	}
	return nil
}

func writeRows(tx *sql.Tx, designs []*object) error {
	if _, err := tx.Exec(sqliteSchema); err != nil {
		return errors.IO(errors.PhaseEncode, "create schema", err)
	}

	insertDesign, err := tx.Prepare(`INSERT INTO designs (id, name, elaborated) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.IO(errors.PhaseEncode, "prepare design insert", err)
	}
	defer insertDesign.Close()

	insertObject, err := tx.Prepare(`INSERT INTO objects (id, design_id, parent_id, rel, kind,
		name, full_name, def_name, file, line, col, size, def_file, def_line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.IO(errors.PhaseEncode, "prepare object insert", err)
	}
	defer insertObject.Close()

	var nextID int64
	var insert func(designID int64, parent sql.NullInt64, rel string, o *object) error
	insert = func(designID int64, parent sql.NullInt64, rel string, o *object) error {
		nextID++
		id := nextID
		var size sql.NullInt64
		if o.size != vpi.Undefined {
			size = sql.NullInt64{Int64: o.size, Valid: true}
		}
		if _, err := insertObject.Exec(id, designID, parent, rel, o.kind.String(),
			nullString(o.name), nullString(o.fullName), nullString(o.defName), nullString(o.file),
			o.line, o.column, size, nullString(o.defFile), o.defLine); err != nil {
			return errors.IO(errors.PhaseEncode, "insert object", err)
		}
		for _, c := range o.children {
			if err := insert(designID, sql.NullInt64{Int64: id, Valid: true}, "", c); err != nil {
				return err
			}
		}
		return nil
	}

	for i, d := range designs {
		designID := int64(i + 1)
		if _, err := insertDesign.Exec(designID, d.name, d.elaborated); err != nil {
			return errors.IO(errors.PhaseEncode, "insert design", err)
		}
		for _, o := range d.allModules {
			if err := insert(designID, sql.NullInt64{}, relAllModules, o); err != nil {
				return err
			}
		}
		for _, o := range d.topModules {
			if err := insert(designID, sql.NullInt64{}, relTopModules, o); err != nil {
				return err
			}
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
