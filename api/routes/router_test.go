package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cjvillanueva/casamar-backend/internal/bookings"
	"github.com/cjvillanueva/casamar-backend/internal/rooms"
	"github.com/cjvillanueva/casamar-backend/pkg/config"
	"github.com/cjvillanueva/casamar-backend/pkg/db/models"
	"github.com/cjvillanueva/casamar-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Room{}, &models.Amenity{}, &models.GalleryImage{}, &models.Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	db := newRouterTestDB(t)

	roomsSvc, err := rooms.NewService(rooms.ServiceParams{Repo: rooms.NewRepository(db)})
	if err != nil {
		t.Fatalf("rooms service: %v", err)
	}
	bookingsSvc, err := bookings.NewService(bookings.ServiceParams{
		Repo: bookings.NewRepository(db),
		Tx:   gormTxRunner{db: db},
	})
	if err != nil {
		t.Fatalf("bookings service: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"

	handler := NewRouter(RouterParams{
		Config:          cfg,
		Logger:          logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		DB:              stubPinger{},
		RoomsService:    roomsSvc,
		BookingsService: bookingsSvc,
	})
	return handler, db
}

func seedRouterRoom(t *testing.T, db *gorm.DB) models.Room {
	t.Helper()
	room := models.Room{
		Name: "Garden Villa", MinGuests: 1, MaxGuests: 4, Price: 250,
		Available: true, TotalUnits: 2,
		Amenities:     []models.Amenity{{Name: "Wifi"}},
		GalleryImages: []models.GalleryImage{{ImageURL: "/img/a.jpg", Position: 0}},
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return room
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestHealthEndpoints(t *testing.T) {
	handler, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, resp.Code)
		}
		if resp.Header().Get("X-Casamar-Env") != "test" {
			t.Fatalf("%s missing env header", path)
		}
	}
}

func TestRoomsSearchEndpoint(t *testing.T) {
	handler, db := newTestRouter(t)
	seedRouterRoom(t, db)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/rooms?guests=2", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data []rooms.RoomSummary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].AvailableUnits != 2 {
		t.Fatalf("data = %+v", body.Data)
	}
}

func TestRoomsSearchBadDateIsRejected(t *testing.T) {
	handler, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/rooms?checkIn=garbage&checkOut=2024-06-03", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestRoomDetailEndpoint(t *testing.T) {
	handler, db := newTestRouter(t)
	room := seedRouterRoom(t, db)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data rooms.RoomDetail `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.ID != room.ID || len(body.Data.Amenities) != 1 {
		t.Fatalf("data = %+v", body.Data)
	}

	missing := httptest.NewRecorder()
	handler.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/999", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing room status = %d, want 404", missing.Code)
	}
}

func TestRoomAvailabilityEndpoint(t *testing.T) {
	handler, db := newTestRouter(t)
	seedRouterRoom(t, db)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/1/availability?month=6&year=2030", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data rooms.CalendarPayload `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.StartDate != "2030-06-01" || body.Data.EndDate != "2030-09-01" {
		t.Fatalf("window = %s..%s", body.Data.StartDate, body.Data.EndDate)
	}
	if len(body.Data.Availability) != 0 {
		t.Fatalf("availability = %v, want empty", body.Data.Availability)
	}
}

func TestBookingCreateEndpoint(t *testing.T) {
	handler, db := newTestRouter(t)
	seedRouterRoom(t, db)

	payload := `{
		"room_id": 1,
		"check_in": "` + futureDate(10) + `",
		"check_out": "` + futureDate(12) + `",
		"guests": 2,
		"guest_name": "Ana Reyes",
		"guest_email": "ana@example.com",
		"contact_number": "+63 912 555 0101"
	}`

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data bookings.AdmitResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.TotalPrice != 500 || body.Data.RemainingUnits != 1 {
		t.Fatalf("data = %+v", body.Data)
	}
}

func TestBookingCreateValidationAndConflict(t *testing.T) {
	handler, db := newTestRouter(t)
	seedRouterRoom(t, db)

	missing := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"room_id": 1}`))
	handler.ServeHTTP(missing, req)
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status = %d, want 400", missing.Code)
	}

	payload := func() string {
		return `{
			"room_id": 1,
			"check_in": "` + futureDate(10) + `",
			"check_out": "` + futureDate(12) + `",
			"guests": 2,
			"guest_name": "Ana Reyes",
			"guest_email": "ana@example.com",
			"contact_number": "+63 912 555 0101"
		}`
	}

	for i := 0; i < 2; i++ {
		ok := httptest.NewRecorder()
		handler.ServeHTTP(ok, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload())))
		if ok.Code != http.StatusCreated {
			t.Fatalf("admission %d status = %d, body %s", i+1, ok.Code, ok.Body.String())
		}
	}

	full := httptest.NewRecorder()
	handler.ServeHTTP(full, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload())))
	if full.Code != http.StatusConflict {
		t.Fatalf("exhausted status = %d, want 409", full.Code)
	}
}
