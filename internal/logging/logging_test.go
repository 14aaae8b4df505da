// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	require.NoError(t, err)
	l.Info("hidden")
	l.WithField("nis", 12.5).Warn("large residual")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "nis=12.5")

	_, err = New(&buf, "loud")
	assert.Error(t, err)
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, Discard(), OrDiscard(nil))
	l, _ := New(&bytes.Buffer{}, "info")
	assert.Equal(t, l, OrDiscard(l))
}
