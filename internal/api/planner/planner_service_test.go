package planner

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/travelwiz/travelwiz/internal/types"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, destination string) (*types.GeoPoint, error) {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeoPoint), args.Error(1)
}

type MockPoiFetcher struct {
	mock.Mock
}

func (m *MockPoiFetcher) FetchElements(ctx context.Context, tags []string, lat, lon float64) ([]OverpassElement, error) {
	args := m.Called(ctx, tags, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]OverpassElement), args.Error(1)
}

type MockItineraryRepo struct {
	mock.Mock
}

func (m *MockItineraryRepo) CreateItinerary(ctx context.Context, it *types.Itinerary) (*types.Itinerary, error) {
	args := m.Called(ctx, it)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockItineraryRepo) GetItinerariesByUser(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Itinerary), args.Error(1)
}

func (m *MockItineraryRepo) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockItineraryRepo) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	args := m.Called(ctx, userID, itineraryID)
	return args.Error(0)
}

func jaipurPoint() *types.GeoPoint {
	return &types.GeoPoint{Latitude: 26.9124, Longitude: 75.7873, DisplayName: "Jaipur, Rajasthan, India"}
}

func manyElements(n int) []OverpassElement {
	var elements []OverpassElement
	for i := 0; i < n; i++ {
		elements = append(elements, namedElement(int64(i), fmt.Sprintf("POI %d", i), float64(i), float64(i),
			map[string]string{"tourism": "attraction"}))
	}
	return elements
}

// stubItineraryRepo echoes the itinerary it is given with an ID assigned,
// the way the real insert does.
type stubItineraryRepo struct {
	saved *types.Itinerary
}

func (s *stubItineraryRepo) CreateItinerary(ctx context.Context, it *types.Itinerary) (*types.Itinerary, error) {
	out := *it
	out.ID = uuid.New()
	s.saved = &out
	return &out, nil
}

func (s *stubItineraryRepo) GetItinerariesByUser(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	return nil, nil
}

func (s *stubItineraryRepo) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	return s.saved, nil
}

func (s *stubItineraryRepo) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	return nil
}

func TestGenerate(t *testing.T) {
	userID := uuid.New()

	t.Run("EmptyDestinationMakesNoExternalCalls", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := new(MockItineraryRepo)
		service := NewService(geocoder, fetcher, repo, slog.Default())

		_, err := service.Generate(context.Background(), userID, types.GenerateItineraryRequest{Destination: "   "})

		assert.ErrorIs(t, err, types.ErrValidation)
		geocoder.AssertNotCalled(t, "Geocode")
		fetcher.AssertNotCalled(t, "FetchElements")
		repo.AssertNotCalled(t, "CreateItinerary")
	})

	t.Run("GeocodeFailurePropagates", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := new(MockItineraryRepo)
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Atlantis").Return(nil, fmt.Errorf("%w: cannot find destination", types.ErrGeocode)).Once()

		_, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Atlantis"})

		assert.ErrorIs(t, err, types.ErrGeocode)
		fetcher.AssertNotCalled(t, "FetchElements")
		repo.AssertNotCalled(t, "CreateItinerary")
		geocoder.AssertExpectations(t)
	})

	t.Run("PoiFetchFailurePropagates", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := new(MockItineraryRepo)
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Jaipur").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx, mock.Anything, jaipurPoint().Latitude, jaipurPoint().Longitude).
			Return(nil, fmt.Errorf("%w: status 504", types.ErrPoiFetch)).Once()

		_, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Jaipur"})

		assert.ErrorIs(t, err, types.ErrPoiFetch)
		repo.AssertNotCalled(t, "CreateItinerary")
	})

	t.Run("ZeroPoisStillProducesPlan", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := &stubItineraryRepo{}
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Jaipur").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return([]OverpassElement{}, nil).Once()

		it, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Jaipur", Days: 2})

		require.NoError(t, err)
		require.Len(t, it.Plan.Days, 2)
		assert.Empty(t, it.Plan.Days[0].Places)
		assert.Empty(t, it.Plan.Days[1].Places)
	})

	t.Run("InterestsDriveQueryTags", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := &stubItineraryRepo{}
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Jaipur").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx,
			[]string{"tourism=museum", "amenity=theatre", "historic=castle"},
			jaipurPoint().Latitude, jaipurPoint().Longitude).
			Return(manyElements(5), nil).Once()

		_, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{
			Destination: "Jaipur",
			Days:        2,
			Interests:   []string{"Culture & Heritage"},
		})

		require.NoError(t, err)
		fetcher.AssertExpectations(t)
	})

	t.Run("NoInterestsUseDefaultTags", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := &stubItineraryRepo{}
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Goa").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx,
			[]string{"tourism=attraction", "amenity=restaurant", "leisure=park"},
			mock.Anything, mock.Anything).
			Return(manyElements(5), nil).Once()

		_, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Goa"})

		require.NoError(t, err)
		fetcher.AssertExpectations(t)
	})

	t.Run("DefaultsAndTitle", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := &stubItineraryRepo{}
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Jaipur").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(manyElements(5), nil).Once()

		it, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Jaipur"})

		require.NoError(t, err)
		assert.Equal(t, 3, it.Days)
		assert.Equal(t, 1, it.Adults)
		assert.Equal(t, "Jaipur — 3 days", it.Title)
		assert.Equal(t, userID, it.UserID)
		assert.Len(t, it.Plan.Days, 3)
	})

	t.Run("CandidateCapScalesWithDays", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := &stubItineraryRepo{}
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Jaipur").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(manyElements(50), nil).Once()

		it, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Jaipur", Days: 5})

		require.NoError(t, err)
		total := 0
		for _, day := range it.Plan.Days {
			total += len(day.Places)
		}
		assert.Equal(t, 15, total)
	})

	t.Run("OneDayFloorOfEight", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := &stubItineraryRepo{}
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Jaipur").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(manyElements(50), nil).Once()

		it, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Jaipur", Days: 1})

		require.NoError(t, err)
		require.Len(t, it.Plan.Days, 1)
		assert.Len(t, it.Plan.Days[0].Places, 8)
	})

	t.Run("PersistenceFailure", func(t *testing.T) {
		ctx := context.Background()
		geocoder := new(MockGeocoder)
		fetcher := new(MockPoiFetcher)
		repo := new(MockItineraryRepo)
		service := NewService(geocoder, fetcher, repo, slog.Default())

		geocoder.On("Geocode", ctx, "Jaipur").Return(jaipurPoint(), nil).Once()
		fetcher.On("FetchElements", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(manyElements(5), nil).Once()
		repo.On("CreateItinerary", ctx, mock.AnythingOfType("*types.Itinerary")).
			Return(nil, types.ErrPersistence).Once()

		_, err := service.Generate(ctx, userID, types.GenerateItineraryRequest{Destination: "Jaipur"})

		assert.ErrorIs(t, err, types.ErrPersistence)
	})
}
