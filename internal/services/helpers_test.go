package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/sitelog/internal/db"
	"github.com/terraincognita07/sitelog/internal/models"
	"gorm.io/gorm"
)

type testEnv struct {
	database    *gorm.DB
	repos       *db.Repositories
	permissions *PermissionEvaluator
	access      *AccessResolver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "sitelog-services.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repos := db.NewRepositories(database)
	return &testEnv{
		database:    database,
		repos:       repos,
		permissions: NewPermissionEvaluator(repos.Projects, repos.Members, nil),
		access:      NewAccessResolver(repos.Projects),
	}
}

func (env *testEnv) user(t *testing.T, name string, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, PasswordHash: "hash", Role: models.RoleUser}
	if err := env.repos.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (env *testEnv) project(t *testing.T, name string, ownerID uint) models.Project {
	t.Helper()

	project := models.Project{Name: name, Active: true}
	if ownerID != 0 {
		project.OwnerUserID = &ownerID
	}
	if err := env.repos.Projects.Create(&project); err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}

func (env *testEnv) member(t *testing.T, projectID uint, userID uint, role string) {
	t.Helper()

	joinedAt := time.Now()
	if err := env.repos.Members.Create(&models.ProjectMember{ProjectID: projectID, UserID: userID, Role: role, JoinedAt: &joinedAt}); err != nil {
		t.Fatalf("create membership: %v", err)
	}
}

func (env *testEnv) company(t *testing.T, projectID uint, name string) models.Company {
	t.Helper()

	company := models.Company{Name: name, ProjectID: &projectID}
	if err := env.repos.Companies.Create(&company); err != nil {
		t.Fatalf("create company %s: %v", name, err)
	}
	return company
}

func (env *testEnv) person(t *testing.T, projectID uint, name string, companyID *uint) models.Person {
	t.Helper()

	person := models.Person{Name: name, ProjectID: &projectID, CompanyID: companyID}
	if err := env.repos.People.Create(&person); err != nil {
		t.Fatalf("create person %s: %v", name, err)
	}
	return person
}

func (env *testEnv) rosterService() *RosterService {
	return NewRosterService(env.permissions, env.repos.People, env.repos.Companies)
}

func (env *testEnv) memberService() *MemberService {
	return NewMemberService(env.permissions, env.repos.Members, env.repos.Users)
}

func (env *testEnv) transferService() *TransferService {
	return NewTransferService(env.permissions, env.repos.PersonalList, env.repos.People, env.repos.Companies)
}

func (env *testEnv) countRows(t *testing.T, table string, where string, args ...any) int64 {
	t.Helper()

	var count int64
	if err := env.database.Table(table).Where(where, args...).Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func floatPtr(value float64) *float64 {
	return &value
}

func stringPtr(value string) *string {
	return &value
}
