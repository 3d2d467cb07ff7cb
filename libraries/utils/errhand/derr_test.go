// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errhand

import (
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIf(t *testing.T) {
	assert.Nil(t, BuildIf(nil, "never").AddDetails("x").AddCause(errors.New("y")).Build())
}

func TestDError(t *testing.T) {
	color.NoColor = true

	cause := errors.New("disk\nfull")
	derr := BuildIf(cause, "failed to write %s", "rows.copy").AddDetails("wrote %d rows", 3).AddDetails("giving up").Build()
	require.NotNil(t, derr)

	assert.Equal(t, "failed to write rows.copy", derr.Error())
	assert.True(t, errors.Is(derr, cause))
	assert.Equal(t, "failed to write rows.copy\nwrote 3 rows\ngiving up\ncause:\n\tdisk\n\tfull", derr.Verbose())

	outer := BuildDError("command failed").AddCause(derr).Build()
	assert.Equal(t, "command failed\ncause:\n\tfailed to write rows.copy\n\twrote 3 rows\n\tgiving up\n\tcause:\n\t\tdisk\n\t\tfull", outer.Verbose())

	assert.Equal(t, "plain", BuildDError("plain").Build().Verbose())
}
