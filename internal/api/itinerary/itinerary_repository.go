package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/travelwiz/travelwiz/internal/api"
	"github.com/travelwiz/travelwiz/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines owner-scoped access to stored itineraries. The generated
// plan travels as one opaque JSONB document; there is no update operation.
type Repository interface {
	CreateItinerary(ctx context.Context, it *types.Itinerary) (*types.Itinerary, error)
	GetItinerariesByUser(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool api.DBTX
}

func NewRepository(pgpool api.DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

const itineraryColumns = `id, user_id, title, destination, days, adults, children, budget,
       travel_type, accommodation, interests, notes, plan, thumbnail, created_at`

// CreateItinerary inserts the fully assembled itinerary document. Storage
// failures surface as types.ErrPersistence.
func (r *RepositoryImpl) CreateItinerary(ctx context.Context, it *types.Itinerary) (*types.Itinerary, error) {
	planJSON, err := json.Marshal(it.Plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", types.ErrPersistence)
	}

	interests := it.Interests
	if interests == nil {
		interests = []string{}
	}

	query := `
        INSERT INTO itineraries (
            user_id, title, destination, days, adults, children, budget,
            travel_type, accommodation, interests, notes, plan, thumbnail
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
        )
        RETURNING id, created_at
    `
	stored := *it
	err = r.pgpool.QueryRow(ctx, query,
		it.UserID, it.Title, it.Destination, it.Days, it.Adults, it.Children, it.Budget,
		it.TravelType, it.Accommodation, interests, it.Notes, planJSON, it.Thumbnail,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert itinerary: %v: %w", err, types.ErrPersistence)
	}
	return &stored, nil
}

// GetItinerariesByUser lists the owner's itineraries, newest first.
func (r *RepositoryImpl) GetItinerariesByUser(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM itineraries
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, itineraryColumns)

	rows, err := r.pgpool.Query(ctx, query, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []types.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan itinerary", slog.Any("error", err))
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		itineraries = append(itineraries, *it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itinerary rows: %w", err)
	}
	return itineraries, nil
}

// GetItinerary fetches one itinerary scoped to its owner.
func (r *RepositoryImpl) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM itineraries
        WHERE id = $1 AND user_id = $2
    `, itineraryColumns)

	row := r.pgpool.QueryRow(ctx, query, itineraryID, userID)
	it, err := scanItinerary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return it, nil
}

// DeleteItinerary removes an itinerary owned by userID.
func (r *RepositoryImpl) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM itineraries WHERE id = $1 AND user_id = $2`,
		itineraryID, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete itinerary", slog.Any("error", err))
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func scanItinerary(row pgx.Row) (*types.Itinerary, error) {
	var it types.Itinerary
	var planJSON []byte
	err := row.Scan(
		&it.ID, &it.UserID, &it.Title, &it.Destination, &it.Days, &it.Adults, &it.Children, &it.Budget,
		&it.TravelType, &it.Accommodation, &it.Interests, &it.Notes, &planJSON, &it.Thumbnail, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(planJSON) > 0 {
		if err := json.Unmarshal(planJSON, &it.Plan); err != nil {
			return nil, fmt.Errorf("failed to decode plan: %w", err)
		}
	}
	return &it, nil
}
