package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeGenerator struct {
	options []string
	err     error
	briefs  []CopyBrief
}

func (f *fakeGenerator) GenerateCopy(ctx context.Context, brief CopyBrief) ([]string, error) {
	f.briefs = append(f.briefs, brief)
	return f.options, f.err
}

// ServiceTestSuite runs every service against a fresh in-memory database.
type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	db        *gorm.DB
	repos     *repository.Repositories
	mailer    *testutil.RecordingMailer
	store     *testutil.MemoryStore
	generator *fakeGenerator

	activity      *ActivityService
	notifications *NotificationService
	auth          *AuthService
	users         *UserService
	projects      *ProjectService
	assets        *AssetService
	copy          *CopyService
	content       *ContentService
	tasks         *LaunchTaskService
	pages         *PageService
	files         *FileService
	messages      *MessageService
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutil.NewDB(suite.T())
	suite.repos = repository.New(suite.db)
	suite.mailer = &testutil.RecordingMailer{}
	suite.store = testutil.NewMemoryStore()
	suite.generator = &fakeGenerator{}
	log := zap.NewNop()

	suite.activity = NewActivityService(suite.repos)
	suite.notifications = NewNotificationService(suite.repos)
	suite.auth = NewAuthService(suite.repos, suite.activity, suite.mailer, "https://app.test/", log)
	suite.users = NewUserService(suite.repos, suite.activity, suite.store, log)
	suite.projects = NewProjectService(suite.repos, suite.activity)
	suite.assets = NewAssetService(suite.repos, suite.activity, suite.notifications)
	suite.copy = NewCopyService(suite.repos, suite.activity, suite.notifications, suite.generator)
	suite.content = NewContentService(suite.repos, suite.activity)
	suite.tasks = NewLaunchTaskService(suite.repos, suite.activity, suite.notifications)
	suite.pages = NewPageService(suite.repos, suite.activity)
	suite.files = NewFileService(suite.repos, suite.activity, suite.notifications, suite.store, log)
	suite.messages = NewMessageService(suite.repos, suite.activity, suite.notifications)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) createUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Email:                   email,
		FullName:                "User " + email,
		Role:                    role,
		IsActive:                true,
		PasswordHash:            "hashedpassword",
		NotificationPreferences: models.DefaultNotificationPreferences(),
	}
	suite.Require().NoError(suite.repos.Users.Create(user))
	return user
}

func (suite *ServiceTestSuite) sessionFor(user *models.User) auth.Session {
	return auth.FromUser(user)
}

func (suite *ServiceTestSuite) createProject(clientEmail string, lead *models.User) *models.Project {
	project := &models.Project{ProjectName: "Launch " + clientEmail, CreatorEmail: clientEmail}
	if lead != nil {
		project.LeadStrategistID = &lead.ID
	}
	suite.Require().NoError(suite.repos.Projects.Create(project))
	return project
}

func (suite *ServiceTestSuite) countActivity(action string) int64 {
	count, err := suite.repos.Activities.Count(repository.ActivityFilter{ActionType: &action})
	suite.Require().NoError(err)
	return count
}

func (suite *ServiceTestSuite) notificationsFor(user *models.User) []models.Notification {
	list, err := suite.repos.Notifications.List(user.ID, false, 100)
	suite.Require().NoError(err)
	return list
}
