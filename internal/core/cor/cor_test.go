// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/stretchr/testify/assert"
)

// appendCommand appends its suffix to the string piped through the chain.
type appendCommand struct {
	cor.BaseCommand
	suffix string
}

func newAppendCommand(name string, suffix string) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix}
}

func (c *appendCommand) Execute(ctx cor.Context) {
	in := ctx.Get(c.GetInputParam()).(string)
	ctx.Add(c.GetOutputParam(), in+c.suffix)
}

// failingCommand records an error and produces no output.
type failingCommand struct {
	cor.BaseCommand
}

func (c *failingCommand) Execute(ctx cor.Context) {
	ctx.AddError(c.GetName(), errors.New("boom"))
}

// TestChainPipesOutputs verifies the output of each command becomes the
// input of the next.
func TestChainPipesOutputs(t *testing.T) {
	chain := cor.NewBaseChain("test_chain")
	chain.AddCommand(newAppendCommand("first", "-a"))
	chain.AddCommand(newAppendCommand("second", "-b"))

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.Add(cor.CtxIn, "start")

	chain.Execute(ctx)

	assert.False(t, ctx.HasErrors())
	assert.Equal(t, "start-a-b", ctx.Get(cor.CtxIn))
}

// TestChainStopsOnFirstError verifies the default fail-fast behavior: a
// failed command prevents the rest of the chain from running.
func TestChainStopsOnFirstError(t *testing.T) {
	chain := cor.NewBaseChain("test_chain")
	chain.AddCommand(newAppendCommand("first", "-a"))
	chain.AddCommand(&failingCommand{BaseCommand: *cor.NewBaseCommand("failing")})
	chain.AddCommand(newAppendCommand("never_runs", "-c"))

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.Add(cor.CtxIn, "start")

	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.Len(t, ctx.GetErrors(), 1)
	// The failing command produced no output, and the third command never ran.
	assert.Nil(t, ctx.Get(cor.CtxIn))
}

// TestCommandSkippedWithoutInput verifies the executability precondition: a
// command whose input key is empty is skipped rather than run with nil.
func TestCommandSkippedWithoutInput(t *testing.T) {
	chain := cor.NewBaseChain("test_chain")
	chain.AddCommand(newAppendCommand("first", "-a"))

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	// No CtxIn provided.

	chain.Execute(ctx)

	assert.False(t, ctx.HasErrors())
	assert.Nil(t, ctx.Get(cor.CtxOut))
}
