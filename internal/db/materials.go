package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"learnhub/internal/models"
)

// CreateMaterialParams holds the fields for CreateMaterial. Content is the
// raw PDF; StorageURL is empty when object storage is disabled.
type CreateMaterialParams struct {
	CourseID   uuid.UUID
	Title      string
	FileName   string
	Content    []byte
	StorageURL string
	UploadedBy uuid.UUID
}

const createMaterial = `
INSERT INTO pdf_materials (course_id, title, file_name, content, storage_url, uploaded_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, course_id, title, file_name, storage_url, uploaded_by, uploaded_at
`

// CreateMaterial stores an uploaded PDF and its metadata.
func (q *Queries) CreateMaterial(ctx context.Context, arg CreateMaterialParams) (models.PDFMaterial, error) {
	storageURL := pgtype.Text{String: arg.StorageURL, Valid: arg.StorageURL != ""}
	row := q.db.QueryRow(ctx, createMaterial,
		arg.CourseID, arg.Title, arg.FileName, arg.Content, storageURL, arg.UploadedBy)
	return scanMaterial(row)
}

const getMaterialByID = `
SELECT id, course_id, title, file_name, storage_url, uploaded_by, uploaded_at
FROM pdf_materials WHERE id = $1
`

// GetMaterialByID returns a material's metadata (not its content), or
// pgx.ErrNoRows.
func (q *Queries) GetMaterialByID(ctx context.Context, id uuid.UUID) (models.PDFMaterial, error) {
	return scanMaterial(q.db.QueryRow(ctx, getMaterialByID, id))
}

const getMaterialContent = `
SELECT content FROM pdf_materials WHERE id = $1
`

// GetMaterialContent returns the raw PDF bytes of a material. Kept separate
// from GetMaterialByID so listings never drag megabytes of bytea around.
func (q *Queries) GetMaterialContent(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var content []byte
	err := q.db.QueryRow(ctx, getMaterialContent, id).Scan(&content)
	return content, err
}

const updateMaterialStorageURL = `
UPDATE pdf_materials SET storage_url = $2 WHERE id = $1
`

// UpdateMaterialStorageURL records the object storage URL of a material
// after the mirror upload completes.
func (q *Queries) UpdateMaterialStorageURL(ctx context.Context, id uuid.UUID, storageURL string) error {
	_, err := q.db.Exec(ctx, updateMaterialStorageURL, id,
		pgtype.Text{String: storageURL, Valid: storageURL != ""})
	return err
}

const listMaterialsByCourse = `
SELECT id, course_id, title, file_name, storage_url, uploaded_by, uploaded_at
FROM pdf_materials WHERE course_id = $1
ORDER BY uploaded_at DESC
`

// ListMaterialsByCourse returns a course's materials, newest first.
func (q *Queries) ListMaterialsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.PDFMaterial, error) {
	rows, err := q.db.Query(ctx, listMaterialsByCourse, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []models.PDFMaterial
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (models.PDFMaterial, error) {
	var m models.PDFMaterial
	var storageURL pgtype.Text
	err := row.Scan(&m.ID, &m.CourseID, &m.Title, &m.FileName, &storageURL, &m.UploadedBy, &m.UploadedAt)
	if err != nil {
		return m, err
	}
	if storageURL.Valid {
		m.StorageURL = storageURL.String
	}
	return m, nil
}
