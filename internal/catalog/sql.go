package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ziadkadry99/aidir/internal/db"
)

const metaLastUpdated = "last_updated"

// SaveDB replaces the catalog held in d with doc.
func SaveDB(ctx context.Context, d *db.DB, doc Document) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM tool_tags`, `DELETE FROM tools`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaLastUpdated, doc.Meta.LastUpdated); err != nil {
		return fmt.Errorf("saving catalog meta: %w", err)
	}

	snap := NewSnapshot(doc, 0)
	for pos, t := range snap.Tools {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tools (id, position, title, description, category, rating, is_free, link, added, details)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(t.ID), pos, t.Title, t.Description, string(t.Category), t.Rating,
			boolToInt(t.IsFree), t.Link, t.Added, t.Details); err != nil {
			return fmt.Errorf("saving tool %s: %w", t.ID, err)
		}
		for i, tag := range t.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tool_tags (tool_id, position, tag) VALUES (?, ?, ?)`,
				string(t.ID), i, tag); err != nil {
				return fmt.Errorf("saving tags of %s: %w", t.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

// LoadDB reads the catalog held in d, in its saved order.
func LoadDB(ctx context.Context, d *db.DB) (Document, error) {
	var doc Document

	err := d.QueryRowContext(ctx,
		`SELECT value FROM catalog_meta WHERE key = ?`, metaLastUpdated).Scan(&doc.Meta.LastUpdated)
	if err != nil && err != sql.ErrNoRows {
		return Document{}, fmt.Errorf("loading catalog meta: %w", err)
	}

	rows, err := d.QueryContext(ctx,
		`SELECT id, title, description, category, rating, is_free, link, added, details
		 FROM tools ORDER BY position`)
	if err != nil {
		return Document{}, fmt.Errorf("querying tools: %w", err)
	}
	defer rows.Close()

	index := make(map[ID]int)
	for rows.Next() {
		var t Tool
		var id, category string
		var isFree int
		if err := rows.Scan(&id, &t.Title, &t.Description, &category, &t.Rating,
			&isFree, &t.Link, &t.Added, &t.Details); err != nil {
			return Document{}, fmt.Errorf("scanning tool: %w", err)
		}
		t.ID = ID(id)
		t.Category = Category(category)
		t.IsFree = isFree != 0
		index[t.ID] = len(doc.Tools)
		doc.Tools = append(doc.Tools, t)
	}
	if err := rows.Err(); err != nil {
		return Document{}, fmt.Errorf("iterating tools: %w", err)
	}

	tagRows, err := d.QueryContext(ctx,
		`SELECT tool_id, tag FROM tool_tags ORDER BY tool_id, position`)
	if err != nil {
		return Document{}, fmt.Errorf("querying tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var id, tag string
		if err := tagRows.Scan(&id, &tag); err != nil {
			return Document{}, fmt.Errorf("scanning tag: %w", err)
		}
		if i, ok := index[ID(id)]; ok {
			doc.Tools[i].Tags = append(doc.Tools[i].Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return Document{}, fmt.Errorf("iterating tags: %w", err)
	}

	return doc, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
