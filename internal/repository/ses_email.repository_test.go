package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func initializeEmailHandler() (EmailRepository, error) {
	f, err := os.ReadFile("../../secrets-dev.json")
	if err != nil {
		return nil, fmt.Errorf("could not open secrets-dev.json: %w", err)
	}

	type secrets struct {
		Email struct {
			Region      string `json:"region"`
			FromAddress string `json:"fromAddress"`
		} `json:"email"`
	}

	s := secrets{}
	err = json.Unmarshal(f, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal secrets: %w", err)
	}

	if s.Email.Region == "" {
		return nil, fmt.Errorf("email region not found in secrets")
	}
	if s.Email.FromAddress == "" {
		return nil, fmt.Errorf("email fromAddress not found in secrets")
	}

	return NewEmailRepository(s.Email.Region, s.Email.FromAddress)
}

func Test_emailRepositoryHandler_SendEmail(t *testing.T) {
	// sends a real email through ses. flip the condition to run it.
	if true {
		t.Skip("skipping live email test - set condition to false to run")
	}

	handler, err := initializeEmailHandler()
	require.NoError(t, err)

	err = handler.SendEmail(
		"someone@example.com",
		"propfactor smoke test",
		"<html><body><p>if you are reading this, the ses wiring works</p></body></html>",
	)

	if err != nil {
		t.Logf("failed to send email: %v", err)
		t.Logf("if ses is in sandbox mode, the recipient address must be verified first")
		require.NoError(t, err)
	}
}
