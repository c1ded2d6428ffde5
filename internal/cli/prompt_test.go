package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskTrimsAnswer(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()
	p := NewPrompter(ctx, strings.NewReader("  Dune  \n"), &out)

	answer, err := p.Ask(ctx, "Title: ")
	require.NoError(t, err)
	assert.Equal(t, "Dune", answer)
	assert.Equal(t, "Title: ", out.String())
}

func TestAskRepromptsOnBlank(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()
	p := NewPrompter(ctx, strings.NewReader("\n   \nHerbert\n"), &out)

	answer, err := p.Ask(ctx, "Author: ")
	require.NoError(t, err)
	assert.Equal(t, "Herbert", answer)
	assert.Equal(t, 2, strings.Count(out.String(), "Input required."))
	assert.Equal(t, 3, strings.Count(out.String(), "Author: "))
}

func TestAskEndOfInput(t *testing.T) {
	ctx := context.Background()
	p := NewPrompter(ctx, strings.NewReader("\n"), io.Discard)

	_, err := p.Ask(ctx, "Title: ")
	assert.True(t, errors.Is(err, ErrAborted))
}

func TestAskInterrupted(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPrompter(ctx, r, io.Discard)
	cancel()

	_, err := p.Ask(ctx, "Title: ")
	assert.True(t, errors.Is(err, ErrInterrupted))
}
