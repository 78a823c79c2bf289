package main

import (
	"testing"
	"time"

	"clinicvoice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	token, err := issue("s3cret", "dashboard", time.Hour)
	require.NoError(t, err)

	subject, err := utils.ExtractSubject("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", subject)
}

func TestIssueRejectsBadInput(t *testing.T) {
	_, err := issue("", "dashboard", time.Hour)
	assert.Error(t, err)

	_, err = issue("s3cret", "dashboard", 0)
	assert.Error(t, err)
}
