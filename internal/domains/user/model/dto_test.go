package model

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_EmailShapeOnly(t *testing.T) {
	// .test never resolves, so these pass only if no DNS lookup happens
	for _, email := range []string{"neo@zion.test", "alice@filmorate.test", "a.b+c@sub.domain.test"} {
		req := CreateUserRequest{Login: "neo", Email: email}
		assert.NoError(t, req.Validate(), email)
	}

	for _, email := range []string{"neo", "neo@", "@zion.test", "neo@@zion.test"} {
		err := CreateUserRequest{Login: "neo", Email: email}.Validate()
		require.Error(t, err, email)
		errs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, errs, "email", email)
	}
}

func TestCreateUserRequest_Rules(t *testing.T) {
	err := CreateUserRequest{Login: "has space", Email: "neo@zion.test"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(validation.Errors), "login")

	future := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")
	err = CreateUserRequest{Login: "neo", Email: "neo@zion.test", Birthday: &future}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(validation.Errors), "birthday")

	past := "1990-05-01"
	assert.NoError(t, CreateUserRequest{Login: "neo", Email: "neo@zion.test", Birthday: &past}.Validate())
}

func TestUpdateUserRequest_RequiresID(t *testing.T) {
	err := UpdateUserRequest{Login: "neo", Email: "neo@zion.test"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.(validation.Errors), "id")

	assert.NoError(t, UpdateUserRequest{ID: 1, Login: "neo", Email: "neo@zion.test"}.Validate())
}
