package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"student-chapter-system/models"
)

// ContentService reads documents, units and pages from the content store.
// All methods are pure reads.
type ContentService struct {
	db *sql.DB
}

func NewContentService(db *sql.DB) *ContentService {
	return &ContentService{db: db}
}

// ListUnits returns every unit in the store.
func (cs *ContentService) ListUnits(ctx context.Context) ([]models.Unit, error) {
	rows, err := cs.db.QueryContext(ctx, `
		SELECT unit_id, document_id, title, start_page, end_page FROM units
	`)
	if err != nil {
		return nil, fmt.Errorf("querying units: %w", err)
	}
	defer rows.Close()

	units := []models.Unit{}
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(&u.UnitID, &u.DocumentID, &u.Title, &u.StartPage, &u.EndPage); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}

	return units, nil
}

// ResolveUnit looks up a unit and returns its owning document and inclusive
// page range. A miss yields ErrUnitNotFound.
func (cs *ContentService) ResolveUnit(ctx context.Context, unitID int) (documentID, startPage, endPage int, err error) {
	row := cs.db.QueryRowContext(ctx, `
		SELECT document_id, start_page, end_page FROM units WHERE unit_id = ?
	`, unitID)

	if err := row.Scan(&documentID, &startPage, &endPage); err != nil {
		if err == sql.ErrNoRows {
			return 0, 0, 0, ErrUnitNotFound
		}
		return 0, 0, 0, fmt.Errorf("scanning unit: %w", err)
	}
	return documentID, startPage, endPage, nil
}

// UnitPages returns the pages covering a unit's range, ordered ascending by
// page number.
func (cs *ContentService) UnitPages(ctx context.Context, unitID int) ([]models.Page, error) {
	documentID, startPage, endPage, err := cs.ResolveUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	rows, err := cs.db.QueryContext(ctx, `
		SELECT id, document_id, page_number, content
		FROM pages
		WHERE document_id = ? AND page_number BETWEEN ? AND ?
		ORDER BY page_number ASC
	`, documentID, startPage, endPage)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	pages := []models.Page{}
	for rows.Next() {
		var p models.Page
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.PageNumber, &p.Content); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}

	return pages, nil
}

// AssembleChapterText joins the content of all pages in [startPage, endPage]
// of a document with single newlines. No pages means an empty string, not an
// error.
func (cs *ContentService) AssembleChapterText(ctx context.Context, documentID, startPage, endPage int) (string, error) {
	rows, err := cs.db.QueryContext(ctx, `
		SELECT content
		FROM pages
		WHERE document_id = ? AND page_number BETWEEN ? AND ?
		ORDER BY page_number ASC
	`, documentID, startPage, endPage)
	if err != nil {
		return "", fmt.Errorf("querying page content: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return "", fmt.Errorf("scanning page content: %w", err)
		}
		texts = append(texts, content)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating page content: %w", err)
	}

	return strings.Join(texts, "\n"), nil
}

// UnitText resolves a unit and assembles its chapter text in one step.
func (cs *ContentService) UnitText(ctx context.Context, unitID int) (string, error) {
	documentID, startPage, endPage, err := cs.ResolveUnit(ctx, unitID)
	if err != nil {
		return "", err
	}
	return cs.AssembleChapterText(ctx, documentID, startPage, endPage)
}
