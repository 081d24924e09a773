package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langbridge/backend/models"
)

// The fakes must honor the same contracts the real stores do: sentinel
// errors, unique guards and the newest-first read order of conversations.

func TestMemoryAccountsUniqueSubject(t *testing.T) {
	accounts := NewMemoryAccounts()
	ctx := context.Background()

	first := &models.User{FirebaseUID: "u1", Email: "a@x.com", Role: models.RoleStudent}
	require.NoError(t, accounts.Create(ctx, first))

	second := &models.User{FirebaseUID: "u1", Email: "b@x.com", Role: models.RoleTeacher}
	assert.ErrorIs(t, accounts.Create(ctx, second), ErrDuplicate)

	user, err := accounts.BySubject(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email, "the first account must survive")
}

func TestMemoryCoursesEnrollmentGuard(t *testing.T) {
	accounts := NewMemoryAccounts()
	courses := NewMemoryCourses(accounts)
	ctx := context.Background()

	course := &models.Course{Title: "T", Level: "A1", Category: "general", TeacherID: 1}
	require.NoError(t, courses.Create(ctx, course))

	require.NoError(t, courses.Enroll(ctx, course.ID, 7))
	assert.ErrorIs(t, courses.Enroll(ctx, course.ID, 7), ErrDuplicate)

	assert.ErrorIs(t, courses.UpdateProgress(ctx, course.ID, 99, 10), ErrNotFound)
}

func TestMemoryConversationsNewestFirst(t *testing.T) {
	conversations := NewMemoryConversations()
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		message := &models.ChatMessage{CourseID: 1, Message: text, SenderID: 1}
		require.NoError(t, conversations.Append(ctx, message))
	}

	messages, err := conversations.Messages(ctx, 1, 50)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "third", messages[0].Message)
	assert.Equal(t, "first", messages[2].Message)
	assert.True(t, messages[0].Timestamp.After(messages[2].Timestamp))

	limited, err := conversations.Messages(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "third", limited[0].Message)
}
