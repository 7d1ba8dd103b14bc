package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tutorhub/internal/database"
	"tutorhub/internal/domain"
	"tutorhub/internal/middleware"
	"tutorhub/internal/modules/booking"
	"tutorhub/internal/modules/notification"
	"tutorhub/internal/modules/reminder"
	"tutorhub/internal/pkg/clock"
	jwtsvc "tutorhub/internal/pkg/jwt"
	"tutorhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	scheduler  *reminder.Scheduler

	tutor   domain.User
	student domain.User
	other   domain.User
	math    domain.Subject
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	models := []interface{}{
		&domain.User{},
		&domain.Subject{},
		&domain.TutorSubject{},
		&domain.Booking{},
		&domain.Notification{},
	}
	for _, model := range models {
		require.NoError(t, db.AutoMigrate(model), fmt.Sprintf("Failed to migrate %T", model))
	}

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New("e2e-test-secret", 24*time.Hour)
	clk := clock.System{}

	hub := notification.NewHub()
	notifService := notification.NewService(notifRepo, userRepo, subjectRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub)

	bookingService := booking.NewService(bookingRepo, userRepo, subjectRepo, notifService, clk)
	bookingHandler := booking.NewHandler(bookingService)

	scheduler := reminder.NewScheduler(bookingRepo, notifService, clk, reminder.DefaultConfig())

	r := gin.New()
	v1 := r.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.Auth(j))
	bookingHandler.RegisterRoutes(protected)
	notifHandler.RegisterRoutes(protected)

	suite := &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: j,
		scheduler:  scheduler,
	}
	suite.seedFixtures(t)
	return suite
}

func (s *E2ETestSuite) seedFixtures(t *testing.T) {
	s.tutor = domain.User{
		Email:           "aizhan@example.com",
		Role:            domain.RoleTutor,
		Name:            "Aizhan",
		TutorStatus:     domain.TutorVerified,
		ProfileComplete: true,
	}
	require.NoError(t, s.db.Create(&s.tutor).Error)

	s.student = domain.User{
		Email:           "bekzat@example.com",
		Role:            domain.RoleStudent,
		Name:            "Bekzat",
		ProfileComplete: true,
	}
	require.NoError(t, s.db.Create(&s.student).Error)

	s.other = domain.User{
		Email:           "dina@example.com",
		Role:            domain.RoleStudent,
		Name:            "Dina",
		ProfileComplete: true,
	}
	require.NoError(t, s.db.Create(&s.other).Error)

	s.math = domain.Subject{Name: "Mathematics"}
	require.NoError(t, s.db.Create(&s.math).Error)

	require.NoError(t, s.db.Create(&domain.TutorSubject{
		TutorID:    s.tutor.ID,
		SubjectID:  s.math.ID,
		HourlyRate: 20,
	}).Error)
}

func (s *E2ETestSuite) request(t *testing.T, method, path string, body any, asUser *domain.User) (*httptest.ResponseRecorder, TestResponse) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if asUser != nil {
		token, err := s.jwtService.GenerateToken(asUser.ID, asUser.Role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func tomorrowAt(hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func (s *E2ETestSuite) createBookingPayload(start, end time.Time) map[string]any {
	return map[string]any{
		"tutor_id":   s.tutor.ID,
		"subject_id": s.math.ID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}
}

func TestBookingCreation_PriceAndStatus(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(10), tomorrowAt(11)), &s.student)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := resp.Data["booking"].(map[string]interface{})
	assert.Equal(t, "pending", b["status"])
	assert.Equal(t, 20.0, b["price"])
	assert.Equal(t, "Aizhan", b["tutor_name"])
	assert.Equal(t, "Mathematics", b["subject_name"])
}

func TestBookingCreation_OverlapRejected(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(10), tomorrowAt(11)), &s.student)
	require.Equal(t, http.StatusCreated, w.Code)

	// second attempt overlaps 10:30-11:30
	start := tomorrowAt(10).Add(30 * time.Minute)
	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(start, start.Add(time.Hour)), &s.student)

	require.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)

	// the first booking is untouched
	var count int64
	s.db.Table("bookings").Count(&count)
	assert.Equal(t, int64(1), count)

	var status string
	s.db.Table("bookings").Select("status").Row().Scan(&status)
	assert.Equal(t, "pending", status)
}

func TestBookingCreation_BackToBackAllowed(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(10), tomorrowAt(11)), &s.student)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(11), tomorrowAt(12)), &s.student)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestBookingStatus_TutorConfirms_StudentCannot(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(10), tomorrowAt(11)), &s.student)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(resp.Data["booking"].(map[string]interface{})["id"].(float64))

	// the student cannot confirm their own booking
	w, resp = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
		map[string]any{"status": "confirmed"}, &s.student)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	// the tutor can
	w, resp = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
		map[string]any{"status": "confirmed"}, &s.tutor)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	b := resp.Data["booking"].(map[string]interface{})
	assert.Equal(t, "confirmed", b["status"])

	// both participants got a status-changed notification
	var count int64
	s.db.Table("notifications").Where("type = ?", "booking_status_changed").Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestBookingStatus_InvalidTransitionRejected(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(10), tomorrowAt(11)), &s.student)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(resp.Data["booking"].(map[string]interface{})["id"].(float64))

	// pending -> completed skips confirmation
	w, resp = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
		map[string]any{"status": "completed"}, &s.tutor)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", resp.Error.Code)
}

func TestBookingVisibility_ParticipantsOnly(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(10), tomorrowAt(11)), &s.student)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(resp.Data["booking"].(map[string]interface{})["id"].(float64))

	w, _ = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, &s.tutor)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, &s.other)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestReminderSweep_ExactlyOncePerParticipant(t *testing.T) {
	s := setupTestSuite(t)

	// a confirmed booking starting in 30 minutes sits inside the lookahead window
	now := time.Now().UTC()
	b := domain.Booking{
		TutorID:   s.tutor.ID,
		StudentID: s.student.ID,
		SubjectID: s.math.ID,
		StartTime: now.Add(30 * time.Minute),
		EndTime:   now.Add(90 * time.Minute),
		Status:    domain.BookingConfirmed,
	}
	require.NoError(t, s.db.Create(&b).Error)

	require.NoError(t, s.scheduler.RunSweep(context.Background()))

	var count int64
	s.db.Table("notifications").Where("type = ?", "booking_reminder").Count(&count)
	require.Equal(t, int64(2), count)

	// the next sweep sees the same booking but emits nothing new
	require.NoError(t, s.scheduler.RunSweep(context.Background()))
	s.db.Table("notifications").Where("type = ?", "booking_reminder").Count(&count)
	assert.Equal(t, int64(2), count)

	// the student sees the reminder with the booking snapshot
	w, resp := s.request(t, http.MethodGet, "/api/v1/notifications", nil, &s.student)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp.Data["notifications"].([]interface{})
	require.Len(t, list, 1)
	n := list[0].(map[string]interface{})
	assert.Equal(t, "booking_reminder", n["type"])
	payload := n["payload"].(map[string]interface{})
	assert.Equal(t, "Aizhan", payload["counterpart_name"])
	assert.Equal(t, "confirmed", payload["status"])
	assert.Equal(t, 1.0, resp.Data["unread_count"])
}

func TestNotifications_MarkRead(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings",
		s.createBookingPayload(tomorrowAt(10), tomorrowAt(11)), &s.student)
	require.Equal(t, http.StatusCreated, w.Code)

	// booking creation notified both parties
	w, resp = s.request(t, http.MethodGet, "/api/v1/notifications", nil, &s.student)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp.Data["notifications"].([]interface{})
	require.Len(t, list, 1)
	notifID := int64(list[0].(map[string]interface{})["id"].(float64))

	w, _ = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/notifications/%d/read", notifID), nil, &s.student)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.request(t, http.MethodGet, "/api/v1/notifications", nil, &s.student)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, resp.Data["unread_count"])

	// another user cannot mark it
	w, _ = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/notifications/%d/read", notifID), nil, &s.other)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuth_Required(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodGet, "/api/v1/bookings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
