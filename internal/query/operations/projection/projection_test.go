package projection_test

import (
	stderrors "errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/errors"
	"github.com/leengari/sillyql/internal/query/operations/projection"
	"github.com/leengari/sillyql/internal/query/operations/testutil"
)

// TestProjection_SelectAll tests selecting all columns
func TestProjection_SelectAll(t *testing.T) {
	table := testutil.CreateUsersTable(t)

	proj, err := projection.Validate(table, nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, proj.Headers(), []string{"id", "username", "active"})

	row := projection.ProjectRow(table.Store().At(0), proj)
	testutil.AssertColumnCount(t, row, 3, "SELECT *")
	assert.Equal(t, row[1], data.String("alice"))
}

// TestProjection_SelectSpecificColumns tests selecting columns in request order
func TestProjection_SelectSpecificColumns(t *testing.T) {
	table := testutil.CreateUsersTable(t)

	proj, err := projection.Validate(table, projection.Names("active", "id"))
	assert.NilError(t, err)
	assert.DeepEqual(t, proj.Positions, []int{2, 0})

	row := projection.ProjectRow(table.Store().At(1), proj)
	testutil.AssertColumnCount(t, row, 2, "Projected row")
	assert.Equal(t, row[0], data.Bool(false))
	assert.Equal(t, row[1], data.Int(2))
}

// TestProjection_RepeatedColumn tests that a column may be requested twice
func TestProjection_RepeatedColumn(t *testing.T) {
	table := testutil.CreateUsersTable(t)

	proj, err := projection.Validate(table, projection.Names("username", "username"))
	assert.NilError(t, err)

	row := projection.ProjectRow(table.Store().At(2), proj)
	assert.Equal(t, row[0], row[1])
}

// TestProjection_ValidateProjection tests projection validation
func TestProjection_ValidateProjection(t *testing.T) {
	table := testutil.CreateUsersTable(t)

	request := projection.Names("id", "nonexistent", "also_missing")
	_, err := projection.Validate(table, request)

	var colErr *errors.ColumnNotFoundError
	assert.Assert(t, stderrors.As(err, &colErr))
	assert.Equal(t, colErr.ColumnName, "nonexistent")

	// The request itself is left untouched
	assert.Assert(t, request.Positions == nil)
}

// TestProjection_ProjectedRowIsACopy tests that callers cannot reach stored cells
func TestProjection_ProjectedRowIsACopy(t *testing.T) {
	table := testutil.CreateUsersTable(t)

	row := projection.ProjectRow(table.Store().At(0), nil)
	row[0] = data.Int(99)

	assert.Equal(t, table.Store().At(0)[0], data.Int(1))
}

// TestProjection_Join tests side-aware column resolution
func TestProjection_Join(t *testing.T) {
	users := testutil.CreateUsersTable(t)
	orders := testutil.CreateOrdersTable(t)

	proj := projection.NewProjectionWithColumns()
	proj.AddColumn("username", data.SideLeft)
	proj.AddColumn("product", data.SideRight)
	proj.AddColumn("id", data.SideRight)

	resolved, err := projection.ValidateJoin(users, orders, proj)
	assert.NilError(t, err)
	assert.DeepEqual(t, resolved.Headers(), []string{"username", "product", "id"})

	joined := data.JoinedRow{
		LeftPos:  0,
		RightPos: 1,
		Left:     users.Store().At(0),
		Right:    orders.Store().At(1),
	}
	row := projection.ProjectJoinedRow(joined, resolved)
	assert.Equal(t, row[0], data.String("alice"))
	assert.Equal(t, row[1], data.String("Mouse"))
	assert.Equal(t, row[2], data.Int(2))
}

// TestProjection_JoinWrongSide tests that a column is looked up on its own side only
func TestProjection_JoinWrongSide(t *testing.T) {
	users := testutil.CreateUsersTable(t)
	orders := testutil.CreateOrdersTable(t)

	proj := projection.NewProjectionWithColumns(projection.ColumnRef{Column: "product", Side: data.SideLeft})
	_, err := projection.ValidateJoin(users, orders, proj)

	var colErr *errors.ColumnNotFoundError
	assert.Assert(t, stderrors.As(err, &colErr))
	assert.Equal(t, colErr.TableName, "users")

	_, err = projection.ValidateJoin(users, orders, projection.Names("id"))
	assert.ErrorContains(t, err, "has no join side")
}
