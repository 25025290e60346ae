package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"personal_diary/internal/logger"
	"personal_diary/internal/models"
	"personal_diary/internal/service"
	"personal_diary/internal/storage"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID  int
	signUpErr error
	loginUser *models.User
	loginErr  error

	lastSignUpUsername string
	lastSignUpPassword string
	lastLoginUsername  string
	lastLoginPassword  string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (*models.User, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginUser, m.loginErr
}

func (m *mockAuth) EnsureAdmin(_ context.Context, username, password string) error {
	return nil
}

// mockSessions resolves fixed tokens to fixed identities.
type mockSessions struct {
	issueToken       string
	issueErr         error
	impersonateToken string
	impersonateErr   error
	identities       map[string]service.Identity

	lastIssued       *models.User
	lastImpersonated *models.User
}

func (m *mockSessions) Issue(user *models.User) (string, error) {
	m.lastIssued = user
	return m.issueToken, m.issueErr
}

func (m *mockSessions) Impersonated(user *models.User) (string, error) {
	m.lastImpersonated = user
	return m.impersonateToken, m.impersonateErr
}

func (m *mockSessions) Parse(token string) service.Identity {
	return m.identities[token]
}

func (m *mockSessions) TTL() time.Duration { return time.Hour }

type mockEntries struct {
	createID    int
	createSaved int
	createErr   error
	getEntry    *models.Entry
	getErr      error
	listResp    []models.EntryPreview
	listErr     error
	updateSaved int
	updateErr   error
	deleteErr   error

	lastCreateOwner   int
	lastCreateDate    string
	lastCreateContent string
	lastCreateFiles   []*multipart.FileHeader
	lastGetEntryID    int
	lastGetRequester  int
	deleteCalls       []int
}

func (m *mockEntries) Create(_ context.Context, ownerID int, date, content string, files []*multipart.FileHeader) (int, int, error) {
	m.lastCreateOwner = ownerID
	m.lastCreateDate = date
	m.lastCreateContent = content
	m.lastCreateFiles = files
	return m.createID, m.createSaved, m.createErr
}

func (m *mockEntries) Get(_ context.Context, entryID, requesterID int) (*models.Entry, error) {
	m.lastGetEntryID = entryID
	m.lastGetRequester = requesterID
	return m.getEntry, m.getErr
}

func (m *mockEntries) List(_ context.Context, ownerID int) ([]models.EntryPreview, error) {
	return m.listResp, m.listErr
}

func (m *mockEntries) Update(_ context.Context, entryID, requesterID int, date, content string, files []*multipart.FileHeader) (int, error) {
	return m.updateSaved, m.updateErr
}

func (m *mockEntries) Delete(_ context.Context, entryID, requesterID int) error {
	m.deleteCalls = append(m.deleteCalls, entryID)
	return m.deleteErr
}

type mockAdmin struct {
	users          []models.UserInfo
	listErr        error
	impersonated   *models.User
	impersonateErr error

	lastTargetID int
}

func (m *mockAdmin) ListUsers(_ context.Context) ([]models.UserInfo, error) {
	return m.users, m.listErr
}

func (m *mockAdmin) Impersonate(_ context.Context, targetID int) (*models.User, error) {
	m.lastTargetID = targetID
	return m.impersonated, m.impersonateErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, store *storage.Storage) *gin.Engine {
	h := NewHandler(s, store, logger.Get(logger.ErrorLevel))
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
