package services

import (
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
)

func (suite *ServiceTestSuite) TestSendMessage_NotifiesLead() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	project := suite.createProject(client.Email, lead)

	entry, err := suite.messages.Send(suite.ctx, suite.sessionFor(client), project.ID, "Can we try a warmer palette?")
	suite.Require().NoError(err)
	suite.Equal("MESSAGE_SENT", entry.ActionType)
	suite.Equal(entry.ID, entry.EntityID)
	suite.Equal("Can we try a warmer palette?", entry.Description)

	notifications := suite.notificationsFor(lead)
	suite.Require().Len(notifications, 1)
	suite.Equal(models.NotificationNewMessage, notifications[0].Type)
	suite.Contains(notifications[0].Message, "warmer palette")

	messages, err := suite.messages.List(suite.ctx, suite.sessionFor(lead), project.ID, 0)
	suite.Require().NoError(err)
	suite.Len(messages, 1)
}

func (suite *ServiceTestSuite) TestSendMessage_LeadDoesNotNotifySelf() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	project := suite.createProject("client@example.com", lead)

	_, err := suite.messages.Send(suite.ctx, suite.sessionFor(lead), project.ID, "Kickoff notes attached")
	suite.Require().NoError(err)
	suite.Empty(suite.notificationsFor(lead))
}

func (suite *ServiceTestSuite) TestSendMessage_RespectsPreferences() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	project := suite.createProject(client.Email, lead)
	off := false
	_, err := suite.users.UpdatePreferences(suite.ctx, suite.sessionFor(lead), PreferencesPatch{NotifyNewMessages: &off})
	suite.Require().NoError(err)

	_, err = suite.messages.Send(suite.ctx, suite.sessionFor(client), project.ID, "Hello?")
	suite.Require().NoError(err)
	suite.Empty(suite.notificationsFor(lead))
}

func (suite *ServiceTestSuite) TestSendMessage_Access() {
	outsider := suite.createUser("outsider@example.com", models.RoleClient)
	project := suite.createProject("client@example.com", nil)

	_, err := suite.messages.Send(suite.ctx, suite.sessionFor(outsider), project.ID, "Let me in")
	suite.ErrorIs(err, policy.ErrForbidden)
	_, err = suite.messages.Send(suite.ctx, suite.sessionFor(outsider), "missing", "Hello")
	suite.ErrorIs(err, ErrProjectNotFound)
	suite.EqualValues(0, suite.countActivity("MESSAGE_SENT"))
}

func (suite *ServiceTestSuite) TestNotifications_OwnerOnly() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	project := suite.createProject(client.Email, lead)

	for _, text := range []string{"first", "second"} {
		_, err := suite.messages.Send(suite.ctx, suite.sessionFor(client), project.ID, text)
		suite.Require().NoError(err)
	}

	list, err := suite.notifications.List(suite.ctx, suite.sessionFor(lead), false, 0)
	suite.Require().NoError(err)
	suite.Require().Len(list.Notifications, 2)
	suite.EqualValues(2, list.UnreadCount)
	target := list.Notifications[0]

	_, err = suite.notifications.MarkRead(suite.ctx, suite.sessionFor(client), target.ID)
	suite.ErrorIs(err, ErrNotificationMissing)
	suite.ErrorIs(suite.notifications.Delete(suite.ctx, suite.sessionFor(client), target.ID), ErrNotificationMissing)

	read, err := suite.notifications.MarkRead(suite.ctx, suite.sessionFor(lead), target.ID)
	suite.Require().NoError(err)
	suite.True(read.IsRead)

	unread, err := suite.notifications.List(suite.ctx, suite.sessionFor(lead), true, 0)
	suite.Require().NoError(err)
	suite.Len(unread.Notifications, 1)
	suite.EqualValues(1, unread.UnreadCount)

	changed, err := suite.notifications.MarkAllRead(suite.ctx, suite.sessionFor(lead))
	suite.Require().NoError(err)
	suite.EqualValues(1, changed)

	suite.Require().NoError(suite.notifications.Delete(suite.ctx, suite.sessionFor(lead), target.ID))
	suite.ErrorIs(suite.notifications.Delete(suite.ctx, suite.sessionFor(lead), target.ID), ErrNotificationMissing)
}

func (suite *ServiceTestSuite) TestNotify_SkipsInactiveRecipient() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	suite.createUser("admin@example.com", models.RoleAdmin)
	admin2 := suite.createUser("admin2@example.com", models.RoleAdmin)
	suite.Require().NoError(suite.users.DeactivateUser(suite.ctx, suite.sessionFor(admin2), lead.ID))

	n, err := suite.notifications.Notify(suite.repos, NotifyInput{
		RecipientID: lead.ID, Type: models.NotificationSystem, Title: "Hi", TriggeredByID: admin2.ID,
	})
	suite.Require().NoError(err)
	suite.Nil(n)
}

func (suite *ServiceTestSuite) TestActivityList_ClientScoping() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	mine := suite.createProject(client.Email, lead)
	theirs := suite.createProject("other@example.com", lead)

	_, err := suite.assets.CreatePalette(suite.ctx, suite.sessionFor(lead), mine, PaletteInput{Name: "Mine"})
	suite.Require().NoError(err)
	_, err = suite.assets.CreatePalette(suite.ctx, suite.sessionFor(lead), theirs, PaletteInput{Name: "Theirs"})
	suite.Require().NoError(err)

	entries, err := suite.activity.List(suite.ctx, suite.sessionFor(client), ActivityQuery{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(mine.ID, *entries[0].ProjectID)

	entries, err = suite.activity.List(suite.ctx, suite.sessionFor(lead), ActivityQuery{})
	suite.Require().NoError(err)
	suite.Len(entries, 2)

	bogus := "NOT_AN_ACTION"
	_, err = suite.activity.List(suite.ctx, suite.sessionFor(lead), ActivityQuery{ActionType: &bogus})
	suite.ErrorIs(err, ErrInvalidFilter)
}

func (suite *ServiceTestSuite) TestParseCopyOptions() {
	options, err := parseCopyOptions("```json\n[\" Bold \", \"\", \"Bright\"]\n```")
	suite.Require().NoError(err)
	suite.Equal([]string{"Bold", "Bright"}, options)

	_, err = parseCopyOptions("Sure! Here are some taglines")
	suite.Error(err)

	var ai *AIService
	suite.Nil(NewAIService(""))
	_, err = ai.GenerateCopy(suite.ctx, CopyBrief{})
	suite.ErrorIs(err, ErrAINotConfigured)
}

func (suite *ServiceTestSuite) TestSendMessage_LongProjectNameFitsTitle() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	project := &models.Project{
		ProjectName:      strings.Repeat("é", 255),
		CreatorEmail:     client.Email,
		LeadStrategistID: &lead.ID,
	}
	suite.Require().NoError(suite.repos.Projects.Create(project))

	_, err := suite.messages.Send(suite.ctx, suite.sessionFor(client), project.ID, "hi")
	suite.Require().NoError(err)

	notifications := suite.notificationsFor(lead)
	suite.Require().Len(notifications, 1)
	title := notifications[0].Title
	suite.LessOrEqual(utf8.RuneCountInString(title), constants.MaxNotificationTitle)
	suite.True(strings.HasPrefix(title, "New message on éé"))
	suite.True(strings.HasSuffix(title, "…"))
}
