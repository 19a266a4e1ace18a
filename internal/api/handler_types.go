package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/sitelog/internal/db"
	"github.com/terraincognita07/sitelog/internal/metrics"
	"github.com/terraincognita07/sitelog/internal/services"
	"github.com/terraincognita07/sitelog/internal/storage"
)

const (
	authCookieName       = "sitelog_auth"
	contextUserKey       = "current_user"
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

// Dependencies are the collaborators a Handler is built from. Geocoder and
// Weather may be nil; the corresponding features then degrade gracefully.
type Dependencies struct {
	Repositories *db.Repositories
	Geocoder     services.Geocoder
	Weather      services.WeatherProvider
	Uploads      *storage.LocalUploads
	Recorder     *metrics.Recorder
}

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	loginLimiter *attemptLimiter
	recorder     *metrics.Recorder
	uploads      *storage.LocalUploads

	authService     *services.AuthService
	permissions     *services.PermissionEvaluator
	access          *services.AccessResolver
	entities        *services.EntityReader
	projectService  *services.ProjectService
	rosterService   *services.RosterService
	legacyRoster    *services.LegacyRosterService
	memberService   *services.MemberService
	transferService *services.TransferService
	personalLists   *services.PersonalListService
	timeService     *services.TimeService
	expenseService  *services.ExpenseService
	journalService  *services.JournalService
}

func NewHandler(secretKey string, location *time.Location, cookieSecure bool, deps Dependencies) (*Handler, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.Repositories == nil {
		return nil, errors.New("repositories are required")
	}
	if deps.Uploads == nil {
		return nil, errors.New("upload storage is required")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		recorder:     deps.Recorder,
		uploads:      deps.Uploads,
	}
	return handler.withDependencies(deps), nil
}
