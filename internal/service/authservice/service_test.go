package authservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
	"gotour/internal/service/authservice"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(domain.LoginResult), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, reg domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Login(ctx context.Context, token string, user domain.User) error {
	args := m.Called(ctx, token, user)
	return args.Error(0)
}

func (m *MockSession) Logout(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSession) CurrentAccess() domain.Access {
	return m.Called().Get(0).(domain.Access)
}

func (m *MockSession) User() (domain.User, bool) {
	args := m.Called()
	return args.Get(0).(domain.User), args.Bool(1)
}

var guide = domain.User{UserID: "u1", Role: domain.RoleGuide, Email: "g@x.io"}

func newService() (*authservice.Service, *MockAuthAPI, *MockSession) {
	api := new(MockAuthAPI)
	sess := new(MockSession)
	return authservice.NewService(api, sess, logger.NewNopLogger()), api, sess
}

func TestLogin_Success(t *testing.T) {
	svc, api, sess := newService()
	ctx := context.Background()

	api.On("Login", ctx, domain.Credentials{Email: "g@x.io", Password: "pw"}).
		Return(domain.LoginResult{AccessToken: "tok", User: guide}, nil)
	sess.On("Login", ctx, "tok", guide).Return(nil)

	user, err := svc.Login(ctx, " g@x.io ", "pw")

	require.NoError(t, err)
	assert.Equal(t, guide, user)
	api.AssertExpectations(t)
	sess.AssertExpectations(t)
}

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) { m.Called(msg, fields) }
func (m *MockLogger) Info(msg string, fields map[string]interface{})  { m.Called(msg, fields) }
func (m *MockLogger) Warn(msg string, fields map[string]interface{})  { m.Called(msg, fields) }
func (m *MockLogger) Error(msg string, err error)                     { m.Called(msg, err) }
func (m *MockLogger) Fatal(msg string, err error)                     { m.Called(msg, err) }

func TestLogin_LeavesLoggingToSessionManager(t *testing.T) {
	api := new(MockAuthAPI)
	sess := new(MockSession)
	log := new(MockLogger)
	svc := authservice.NewService(api, sess, log)
	ctx := context.Background()

	api.On("Login", ctx, domain.Credentials{Email: "g@x.io", Password: "pw"}).
		Return(domain.LoginResult{AccessToken: "tok", User: guide}, nil)
	sess.On("Login", ctx, "tok", guide).Return(nil)

	_, err := svc.Login(ctx, "g@x.io", "pw")

	require.NoError(t, err)
	log.AssertNotCalled(t, "Info", mock.Anything, mock.Anything)
	sess.AssertExpectations(t)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc, api, sess := newService()

	_, err := svc.Login(context.Background(), "", "pw")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	sess.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_NotFoundBecomesUnauthorized(t *testing.T) {
	svc, api, sess := newService()

	api.On("Login", mock.Anything, mock.Anything).
		Return(domain.LoginResult{}, apperror.NewNotFoundError("user"))

	_, err := svc.Login(context.Background(), "a@x.io", "pw")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	assert.Contains(t, err.Error(), "Credenciais inválidas")
	sess.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_APIErrorLeavesSessionUntouched(t *testing.T) {
	svc, api, sess := newService()
	apiErr := apperror.NewInternalError("rede", nil)

	api.On("Login", mock.Anything, mock.Anything).Return(domain.LoginResult{}, apiErr)

	_, err := svc.Login(context.Background(), "a@x.io", "pw")

	assert.Equal(t, apiErr, err)
	sess.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		reg     domain.Registration
		wantErr bool
		sent    domain.Registration
	}{
		{
			name: "role padrão é tourist",
			reg:  domain.Registration{Name: " Ana ", Email: "a@x.io", Password: "123456"},
			sent: domain.Registration{Name: "Ana", Email: "a@x.io", Password: "123456", Role: domain.RoleTourist},
		},
		{
			name: "guide permitido",
			reg:  domain.Registration{Name: "Gui", Email: "g@x.io", Password: "123456", Role: domain.RoleGuide},
			sent: domain.Registration{Name: "Gui", Email: "g@x.io", Password: "123456", Role: domain.RoleGuide},
		},
		{name: "admin recusado", reg: domain.Registration{Name: "Root", Email: "r@x.io", Password: "123456", Role: domain.RoleAdmin}, wantErr: true},
		{name: "email inválido", reg: domain.Registration{Name: "Ana", Email: "ana", Password: "123456"}, wantErr: true},
		{name: "senha curta", reg: domain.Registration{Name: "Ana", Email: "a@x.io", Password: "123"}, wantErr: true},
		{name: "sem nome", reg: domain.Registration{Email: "a@x.io", Password: "123456"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api, _ := newService()
			if !tt.wantErr {
				api.On("Register", mock.Anything, tt.sent).Return(nil)
			}

			err := svc.Register(context.Background(), tt.reg)

			if tt.wantErr {
				assert.IsType(t, &apperror.ValidationError{}, err)
				api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			api.AssertExpectations(t)
		})
	}
}

func TestLogout(t *testing.T) {
	svc, _, sess := newService()
	sess.On("Logout", mock.Anything).Return()

	svc.Logout(context.Background())

	sess.AssertExpectations(t)
}

func TestWhoami(t *testing.T) {
	svc, _, sess := newService()
	sess.On("CurrentAccess").Return(domain.Access{State: domain.StateAuthenticated, Authenticated: true, Role: domain.RoleGuide})
	sess.On("User").Return(guide, true)

	user, access, err := svc.Whoami()

	require.NoError(t, err)
	assert.Equal(t, guide, user)
	assert.Equal(t, domain.RoleGuide, access.Role)
}

func TestWhoami_Anonymous(t *testing.T) {
	svc, _, sess := newService()
	sess.On("CurrentAccess").Return(domain.Access{State: domain.StateAnonymous})
	sess.On("User").Return(domain.User{}, false)

	_, _, err := svc.Whoami()

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}
