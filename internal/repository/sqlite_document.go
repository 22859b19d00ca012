package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
)

const documentColumns = `id, venture_id, name, type, url, size, mime_type, uploaded_at`

// SQLiteDocumentRepo implements DocumentRepo against a SQLite database.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

// NewSQLiteDocumentRepo creates a document repository over the given handle.
func NewSQLiteDocumentRepo(dbtx db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: dbtx}
}

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.VentureID,
		d.Name,
		d.Type,
		d.URL,
		d.Size,
		d.MimeType,
		formatTime(d.UploadedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	d, err := scanDocument(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "Document"}
		}
		return nil, err
	}
	return d, nil
}

// ListByVenture returns a venture's documents newest-first.
func (r *SQLiteDocumentRepo) ListByVenture(ctx context.Context, ventureID string) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE venture_id = ? ORDER BY uploaded_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, ventureID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Document"}
	}
	return nil
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	var uploadedAtStr string
	var docType, mimeType sql.NullString

	err := row.Scan(&d.ID, &d.VentureID, &d.Name, &docType, &d.URL, &d.Size, &mimeType, &uploadedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	d.Type = docType.String
	d.MimeType = mimeType.String
	d.UploadedAt = parseTime(uploadedAtStr)
	return &d, nil
}
