package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

func testSeed() *Seed {
	return &Seed{
		Branches: []BranchSeed{
			{ID: "b1", Name: "Downtown"},
			{ID: "b2", Name: "Uptown"},
		},
		Staff: []StaffSeed{
			{ID: "s1", Name: "Alice", BranchID: "b1", StaffType: "dynamic"},
			{ID: "s2", Name: "Bob", BranchID: "b2", BranchIDs: []string{"b1"}, StaffType: "dynamic"},
			{ID: "s3", Name: "Carol", BranchID: "b2", StaffType: "static"},
		},
		Rooms: []RoomSeed{
			{ID: "r1", Name: "Studio A", BranchID: "b1", RoomType: "static"},
			{ID: "r2", Name: "Studio B", BranchID: "b2", RoomType: "static"},
		},
		Services: []ServiceSeed{
			{ID: "svc1", Name: "Haircut", BranchID: "b1", Price: 50, DurationMinutes: 30},
		},
	}
}

func TestNew_DuplicateID(t *testing.T) {
	seed := testSeed()
	seed.Staff = append(seed.Staff, StaffSeed{ID: "s1", Name: "Clone", BranchID: "b1"})

	_, err := New(seed)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNew_UnknownBranch(t *testing.T) {
	seed := testSeed()
	seed.Rooms = append(seed.Rooms, RoomSeed{ID: "r9", Name: "Ghost", BranchID: "nope"})

	_, err := New(seed)
	assert.ErrorIs(t, err, ErrUnknownBranch)
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := New(testSeed())
	require.NoError(t, err)

	staff, err := c.StaffByID("s1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", staff.Name)

	_, err = c.StaffByID("missing")
	assert.ErrorIs(t, err, ErrStaffNotFound)

	room, err := c.RoomByID("r2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatic, room.Type)

	assert.True(t, c.HasStaff("s2"))
	assert.False(t, c.HasRoom("r9"))
}

func TestCatalog_BranchNarrowing(t *testing.T) {
	c, err := New(testSeed())
	require.NoError(t, err)

	// s2 числится в b2, но также привязан к b1 через branchIds
	b1Staff := c.StaffByBranches([]string{"b1"})
	ids := make([]string, 0, len(b1Staff))
	for _, s := range b1Staff {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s1", "s2"}, ids)

	b1Rooms := c.RoomsByBranches([]string{"b1"})
	require.Len(t, b1Rooms, 1)
	assert.Equal(t, "r1", b1Rooms[0].ID)
}

func TestCatalog_DeleteStaff(t *testing.T) {
	c, err := New(testSeed())
	require.NoError(t, err)

	require.NoError(t, c.DeleteStaff("s1"))
	assert.ErrorIs(t, c.DeleteStaff("s1"), ErrStaffNotFound)

	// Имя удаленного сотрудника резолвится в placeholder
	assert.Equal(t, domain.RemovedStaffLabel, c.StaffName("s1"))
	assert.Equal(t, "Bob", c.StaffName("s2"))
}

func TestCatalog_ListOrderStable(t *testing.T) {
	c, err := New(testSeed())
	require.NoError(t, err)

	first := c.ListStaff()
	second := c.ListStaff()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}
