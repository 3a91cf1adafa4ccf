package tracking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_FindOne_ByID(t *testing.T) {
	svc := NewInMemory()
	svc.AddEntity("Shot", Record{
		"id":      42,
		"code":    "sh010",
		"project": EntityRef{Type: "Project", ID: 7, Name: "demo"},
	})

	rec, err := svc.FindOne(context.Background(), "Shot",
		[]Filter{{Field: "id", Op: "is", Value: 42}},
		[]string{"project"})
	require.NoError(t, err)
	require.NotNil(t, rec)

	ref, ok := rec.RefField("project")
	require.True(t, ok)
	assert.Equal(t, 7, ref.ID)

	// Fields not requested are not projected.
	assert.Empty(t, rec.StringField("code"))
}

func TestInMemory_FindOne_NoMatchReturnsNil(t *testing.T) {
	svc := NewInMemory()
	rec, err := svc.FindOne(context.Background(), "Shot",
		[]Filter{{Field: "id", Op: "is", Value: 1}}, nil)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestInMemory_Find_EntityLinkFilter(t *testing.T) {
	svc := NewInMemory()
	proj := EntityRef{Type: "Project", ID: 7, Name: "demo"}
	svc.AddEntity("PipelineConfiguration", Record{"id": 1, "code": "Primary", "project": proj})
	svc.AddEntity("PipelineConfiguration", Record{"id": 2, "code": "dev", "project": proj})
	svc.AddEntity("PipelineConfiguration", Record{"id": 3, "code": "Primary", "project": EntityRef{Type: "Project", ID: 8}})

	// Link equality ignores the display name.
	recs, err := svc.Find(context.Background(), "PipelineConfiguration",
		[]Filter{{Field: "project", Op: "is", Value: EntityRef{Type: "Project", ID: 7}}},
		[]string{"code"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Primary", recs[0].StringField("code"))
	assert.Equal(t, "dev", recs[1].StringField("code"))
}

func TestInMemory_Find_InOperator(t *testing.T) {
	svc := NewInMemory()
	svc.AddEntity("PipelineConfiguration", Record{"id": 1, "linux_path": "/studio/a"})
	svc.AddEntity("PipelineConfiguration", Record{"id": 2, "linux_path": "/studio/b"})
	svc.AddEntity("PipelineConfiguration", Record{"id": 3, "linux_path": "/studio/c"})

	recs, err := svc.Find(context.Background(), "PipelineConfiguration",
		[]Filter{{Field: "linux_path", Op: "in", Value: []string{"/studio/a", "/studio/c"}}},
		[]string{"linux_path"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestInMemory_Find_UnsupportedOperator(t *testing.T) {
	svc := NewInMemory()
	svc.AddEntity("Shot", Record{"id": 1})

	_, err := svc.Find(context.Background(), "Shot",
		[]Filter{{Field: "id", Op: "contains", Value: 1}}, nil)
	assert.Error(t, err)
}

func TestInMemory_CurrentUser(t *testing.T) {
	svc := NewInMemory()

	u, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u, "no user configured")

	svc.SetCurrentUser(&User{ID: 11, Login: "jane"})
	u, err = svc.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 11, u.ID)
}

func TestUnavailable_AllCallsFail(t *testing.T) {
	svc := NewUnavailable("no credentials configured")
	ctx := context.Background()

	_, err := svc.FindOne(ctx, "Shot", nil, nil)
	assert.ErrorContains(t, err, "no credentials configured")
	_, err = svc.Find(ctx, "Shot", nil, nil)
	assert.Error(t, err)
	_, err = svc.CurrentUser(ctx)
	assert.Error(t, err)
}
