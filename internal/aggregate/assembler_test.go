package aggregate_test

import (
	"errors"
	"testing"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/aggregate/aggregatetest"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleDeduplicatesFanOut(t *testing.T) {
	// One team joined with 3 members and 2 links: 3 x 2 = 6 rows, shuffled.
	rows := &aggregatetest.Rows{Data: [][]any{
		row(i64(1), "Tigers", i64(12), "b", i64(101), i64(1), "@tigers"),
		row(i64(1), "Tigers", i64(11), "a", i64(102), i64(2), "fb/tigers"),
		row(i64(1), "Tigers", i64(12), "b", i64(102), i64(2), "fb/tigers"),
		row(i64(1), "Tigers", i64(13), "c", i64(101), i64(1), "@tigers"),
		row(i64(1), "Tigers", i64(11), "a", i64(101), i64(1), "@tigers"),
		row(i64(1), "Tigers", i64(13), "c", i64(102), i64(2), "fb/tigers"),
	}}

	out, err := aggregate.Assemble(rows, teamShape())
	require.NoError(t, err)
	assert.True(t, rows.Closed)

	require.Len(t, out.ByID, 1)
	got, ok := out.Get(1)
	require.True(t, ok)

	assert.Equal(t, "Tigers", got.Name)
	assert.Equal(t, []member{{ID: 12, Name: "b"}, {ID: 11, Name: "a"}, {ID: 13, Name: "c"}}, got.Members,
		"each member once, in first-seen order")
	assert.Equal(t, []link{{ID: 101, NetworkID: 1, Profile: "@tigers"}, {ID: 102, NetworkID: 2, Profile: "fb/tigers"}}, got.Links)
}

func TestAssembleIgnoresNullGroups(t *testing.T) {
	rows := &aggregatetest.Rows{Data: [][]any{
		row(i64(1), "Lonely", nil, nil, nil, nil, nil),
		row(i64(2), "Linked", nil, nil, i64(201), i64(3), "@linked"),
		row(i64(2), "Linked", nil, nil, i64(202), i64(4), "@linked2"),
	}}

	out, err := aggregate.Assemble(rows, teamShape())
	require.NoError(t, err)

	lonely, ok := out.Get(1)
	require.True(t, ok)
	assert.Empty(t, lonely.Members)
	assert.Empty(t, lonely.Links)

	linked, ok := out.Get(2)
	require.True(t, ok)
	assert.Empty(t, linked.Members, "null member group must not create a phantom member")
	assert.Len(t, linked.Links, 2)
}

func TestAssembleKeepsRootOrder(t *testing.T) {
	rows := &aggregatetest.Rows{Data: [][]any{
		row(i64(7), "Seven", i64(1), "x", nil, nil, nil),
		row(i64(3), "Three", nil, nil, nil, nil, nil),
		row(i64(7), "Seven", i64(2), "y", nil, nil, nil),
		row(i64(5), "Five", nil, nil, nil, nil, nil),
	}}

	out, err := aggregate.Assemble(rows, teamShape())
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 3, 5}, out.Order)
	list := out.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Seven", list[0].Name)
	assert.Equal(t, []string{"x", "y"}, names(list[0].Members))
}

func TestAssembleSameChildIDUnderDifferentRoots(t *testing.T) {
	// Dedup is per root: the same child id under two roots attaches to both.
	rows := &aggregatetest.Rows{Data: [][]any{
		row(i64(1), "One", i64(9), "shared", nil, nil, nil),
		row(i64(2), "Two", i64(9), "shared", nil, nil, nil),
	}}

	out, err := aggregate.Assemble(rows, teamShape())
	require.NoError(t, err)

	one, _ := out.Get(1)
	two, _ := out.Get(2)
	assert.Len(t, one.Members, 1)
	assert.Len(t, two.Members, 1)
}

func TestAssembleEmpty(t *testing.T) {
	out, err := aggregate.Assemble(&aggregatetest.Rows{}, teamShape())
	require.NoError(t, err)
	assert.Empty(t, out.ByID)
	assert.Empty(t, out.List())

	_, ok := out.Get(1)
	assert.False(t, ok)
}

func TestAssembleScanErrorAborts(t *testing.T) {
	cause := errors.New("decode failure")
	rows := &aggregatetest.Rows{
		Data: [][]any{
			row(i64(1), "Tigers", i64(11), "a", nil, nil, nil),
			row(i64(1), "Tigers", i64(12), "b", nil, nil, nil),
		},
		FailAt:  2,
		ScanErr: cause,
	}

	out, err := aggregate.Assemble(rows, teamShape())
	assert.Nil(t, out, "no partial aggregate")
	assert.True(t, rows.Closed)

	var storeErr *errs.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "team.assemble", storeErr.Op)
	assert.ErrorIs(t, err, cause)
}

func TestAssembleStreamErrorAborts(t *testing.T) {
	cause := errors.New("connection reset")
	rows := &aggregatetest.Rows{
		Data:      [][]any{row(i64(1), "Tigers", nil, nil, nil, nil, nil)},
		StreamErr: cause,
	}

	out, err := aggregate.Assemble(rows, teamShape())
	assert.Nil(t, out)

	var storeErr *errs.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, cause)
}
