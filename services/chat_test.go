package services

import (
	"fmt"
	"testing"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/model"
	"github.com/criss159/fauna-kids/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestPostgres(t *testing.T) *PostgresService {
	t.Helper()

	// A named shared in-memory database keeps every pooled connection
	// on the same schema; the test name isolates tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	ds := &PostgresService{db: db}
	require.NoError(t, ds.Migrate(db))
	return ds
}

func newTestChatService(t *testing.T) (*ChatService, *PostgresService) {
	t.Helper()

	ds := newTestPostgres(t)
	return &ChatService{
		sqlSvc:      ds,
		progressSvc: &ProgressService{sqlSvc: ds},
	}, ds
}

func createTestUser(t *testing.T, ds *PostgresService, username string) *model.User {
	t.Helper()

	user, err := ds.CreateUser(&model.User{
		Username:    username,
		DisplayName: username,
		AccountType: shared.AccountTypeRegistered,
		IsActive:    true,
	})
	require.NoError(t, err)
	return user
}

func TestSaveChatCreatesAndReplaces(t *testing.T) {
	svc, ds := newTestChatService(t)
	user := createTestUser(t, ds, "ana")

	resp, err := svc.SaveChat(user.ID, false, dto.SaveChatRequest{
		Title: "Animales del mar",
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "¿Qué come el delfín?"},
			{Role: shared.MessageRoleAssistant, Text: "El delfín come peces."},
			{Role: shared.MessageRoleUser, Text: "¿Y el tiburón?"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ChatID)

	saved, err := ds.GetChatWithMessages(*resp.ChatID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Animales del mar", saved.Title)
	require.Len(t, saved.Messages, 3)
	assert.Equal(t, "¿Qué come el delfín?", saved.Messages[0].Text)
	assert.Equal(t, "¿Y el tiburón?", saved.Messages[2].Text)

	// Saving again with a shorter list replaces, never appends.
	resp2, err := svc.SaveChat(user.ID, false, dto.SaveChatRequest{
		ChatID: resp.ChatID,
		Title:  "Solo delfines",
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "Háblame del delfín"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, *resp.ChatID, *resp2.ChatID)

	saved, err = ds.GetChatWithMessages(*resp.ChatID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solo delfines", saved.Title)
	require.Len(t, saved.Messages, 1)
	assert.Equal(t, "Háblame del delfín", saved.Messages[0].Text)
}

func TestSaveChatTagsAnimalsInEveryMessage(t *testing.T) {
	svc, ds := newTestChatService(t)
	user := createTestUser(t, ds, "leo")

	resp, err := svc.SaveChat(user.ID, false, dto.SaveChatRequest{
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "cuéntame del elefante"},
			{Role: shared.MessageRoleAssistant, Text: "El elefante es enorme."},
		},
	})
	require.NoError(t, err)

	saved, err := ds.GetChatWithMessages(*resp.ChatID, user.ID)
	require.NoError(t, err)
	require.Len(t, saved.Messages, 2)

	require.NotNil(t, saved.Messages[0].AnimalMentioned)
	assert.Equal(t, "Elefante", *saved.Messages[0].AnimalMentioned)
	require.NotNil(t, saved.Messages[1].AnimalMentioned)
	assert.Equal(t, "Elefante", *saved.Messages[1].AnimalMentioned)

	animals, err := ds.GetAnimalsExplored(user.ID)
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, "Elefante", animals[0].AnimalName)
}

func TestSaveChatTagsAssistantOnlyMention(t *testing.T) {
	svc, ds := newTestChatService(t)
	user := createTestUser(t, ds, "vera")

	resp, err := svc.SaveChat(user.ID, false, dto.SaveChatRequest{
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "cuéntame algo bonito"},
			{Role: shared.MessageRoleAssistant, Text: "¡El canguro salta muy alto!"},
		},
	})
	require.NoError(t, err)

	saved, err := ds.GetChatWithMessages(*resp.ChatID, user.ID)
	require.NoError(t, err)
	require.Len(t, saved.Messages, 2)

	assert.Nil(t, saved.Messages[0].AnimalMentioned)
	require.NotNil(t, saved.Messages[1].AnimalMentioned)
	assert.Equal(t, "Canguro", *saved.Messages[1].AnimalMentioned)

	animals, err := ds.GetAnimalsExplored(user.ID)
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, "Canguro", animals[0].AnimalName)
}

func TestSaveChatUnknownIDStartsFreshChat(t *testing.T) {
	svc, ds := newTestChatService(t)
	user := createTestUser(t, ds, "mia")

	ghost := "no-such-chat"
	resp, err := svc.SaveChat(user.ID, false, dto.SaveChatRequest{
		ChatID: &ghost,
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "hola"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ChatID)
	assert.NotEqual(t, ghost, *resp.ChatID)

	chats, err := ds.ListChats(user.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestSaveChatForeignChatNotReused(t *testing.T) {
	svc, ds := newTestChatService(t)
	owner := createTestUser(t, ds, "owner")
	intruder := createTestUser(t, ds, "intruder")

	resp, err := svc.SaveChat(owner.ID, false, dto.SaveChatRequest{
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "hola"},
		},
	})
	require.NoError(t, err)

	resp2, err := svc.SaveChat(intruder.ID, false, dto.SaveChatRequest{
		ChatID: resp.ChatID,
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "mío ahora"},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, *resp.ChatID, *resp2.ChatID)

	// The owner's chat is untouched.
	saved, err := ds.GetChatWithMessages(*resp.ChatID, owner.ID)
	require.NoError(t, err)
	require.Len(t, saved.Messages, 1)
	assert.Equal(t, "hola", saved.Messages[0].Text)
}

func TestGuestChatsAreNoOps(t *testing.T) {
	svc, _ := newTestChatService(t)

	resp, err := svc.SaveChat("guest-session-id", true, dto.SaveChatRequest{
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "hola"},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.ChatID)
	assert.Equal(t, "Guest chats are not saved", resp.Message)

	chats, err := svc.ListChats("guest-session-id", true)
	require.NoError(t, err)
	assert.Empty(t, chats)

	_, err = svc.GetChat("guest-session-id", true, "whatever")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)

	err = svc.DeleteChat("guest-session-id", true, "whatever")
	require.Error(t, err)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)
}

func TestDeleteChatRemovesMessages(t *testing.T) {
	svc, ds := newTestChatService(t)
	user := createTestUser(t, ds, "tom")

	resp, err := svc.SaveChat(user.ID, false, dto.SaveChatRequest{
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "hola"},
			{Role: shared.MessageRoleAssistant, Text: "¡hola!"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteChat(user.ID, false, *resp.ChatID))

	_, err = svc.GetChat(user.ID, false, *resp.ChatID)
	require.Error(t, err)

	var count int64
	require.NoError(t, ds.db.Model(&model.ChatMessage{}).Where("chat_id = ?", *resp.ChatID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSaveChatBumpsSessionCounter(t *testing.T) {
	svc, ds := newTestChatService(t)
	user := createTestUser(t, ds, "iris")

	_, err := svc.SaveChat(user.ID, false, dto.SaveChatRequest{
		Messages: []dto.ChatMessageInput{
			{Role: shared.MessageRoleUser, Text: "hola"},
		},
	})
	require.NoError(t, err)

	progress, err := ds.GetOrCreateProgress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.TotalSessions)
	assert.Equal(t, 1, progress.CurrentStreakDays)
}
