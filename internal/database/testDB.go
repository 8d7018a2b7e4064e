package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Daeuning/WSD-Assignment-03/internal/config"
	m "github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded records
var (
	TestAdminUser m.User
	TestUser1     m.User
	TestUser2     m.User

	TestCompany1 m.Company
	TestCompany2 m.Company

	// Seoul, 3년, salary 4000, go/postgres
	TestJob1 m.Job
	// Busan, 3년, salary 2000, react/typescript
	TestJob2 m.Job
	// Seoul, 신입, no salary, sql/python
	TestJob3 m.Job

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	cfg := &config.DBConfig{
		DBName:    dbName,
		UseConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(cfg)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts users, companies and jobs used across test packages.
func seedTestData(db *DBinstanceStruct) error {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	users := []m.User{
		{EditableUserInfo: m.EditableUserInfo{Email: "user1@example.com", Bio: "first"}, Password: hashedPwd, Role: m.RoleUser},
		{EditableUserInfo: m.EditableUserInfo{Email: "user2@example.com"}, Password: hashedPwd, Role: m.RoleUser},
		{EditableUserInfo: m.EditableUserInfo{Email: "admin@example.com"}, Password: hashedPwd, Role: m.RoleAdmin},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestUser1, TestUser2, TestAdminUser = users[0], users[1], users[2]

	companies := []m.Company{
		{Slug: "technova", EditableCompanyInfo: m.EditableCompanyInfo{Name: "TechNova", Industry: "Software", CEOName: "Kim"}},
		{Slug: "dataforge", EditableCompanyInfo: m.EditableCompanyInfo{Name: "DataForge", Industry: "Consulting", CEOName: "Lee"}},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}
	TestCompany1, TestCompany2 = companies[0], companies[1]

	now := time.Now()
	jobs := []m.Job{
		{
			CompanyID: TestCompany1.ID,
			CreatedAt: now.Add(-3 * time.Hour),
			EditableJobInfo: m.EditableJobInfo{
				Title:      "Backend Engineer",
				Location:   "Seoul Gangnam",
				Experience: "3년",
				Salary:     ptr(4000),
				JobTag:     "backend",
				StackTags:  pq.StringArray{"go", "postgres"},
				Deadline:   ptr(now.AddDate(0, 1, 0)),
			},
		},
		{
			CompanyID: TestCompany1.ID,
			CreatedAt: now.Add(-2 * time.Hour),
			EditableJobInfo: m.EditableJobInfo{
				Title:      "Frontend Engineer",
				Location:   "Busan",
				Experience: "3년",
				Salary:     ptr(2000),
				JobTag:     "frontend",
				StackTags:  pq.StringArray{"react", "typescript"},
				Deadline:   ptr(now.AddDate(0, 2, 0)),
			},
		},
		{
			CompanyID: TestCompany2.ID,
			CreatedAt: now.Add(-1 * time.Hour),
			EditableJobInfo: m.EditableJobInfo{
				Title:      "Data Analyst",
				Location:   "Seoul",
				Experience: "신입",
				JobTag:     "data",
				StackTags:  pq.StringArray{"sql", "python"},
			},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1, TestJob2, TestJob3 = jobs[0], jobs[1], jobs[2]
	TestJob1.Company, TestJob2.Company, TestJob3.Company = TestCompany1, TestCompany1, TestCompany2

	return nil
}

// NewTestUser creates an extra user so a test can own its state
func NewTestUser(db *DBinstanceStruct, email string) (m.User, error) {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return m.User{}, err
	}
	u := m.User{EditableUserInfo: m.EditableUserInfo{Email: email}, Password: hashedPwd, Role: m.RoleUser}
	return u, db.Create(&u).Error
}

// NewTestJob creates an extra job under TestCompany2 so a test can own its counters
func NewTestJob(db *DBinstanceStruct, title string) (m.Job, error) {
	j := m.Job{
		CompanyID: TestCompany2.ID,
		EditableJobInfo: m.EditableJobInfo{
			Title:     title,
			Location:  "Incheon",
			StackTags: pq.StringArray{"misc"},
		},
	}
	if err := db.Create(&j).Error; err != nil {
		return m.Job{}, err
	}
	j.Company = TestCompany2
	return j, nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
