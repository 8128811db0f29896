// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"fmt"
	"strings"

	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

// OrchestratorContext is the render context for an orchestrator's chain,
// the counterpart of SpecContext for the orchestrator subject.
type OrchestratorContext struct {
	ID          string
	IDPascal    string
	IDCamel     string
	Description string
	Target      string
	Inputs      []InputView
	Outputs     []OutputView
	Body        string // the rendered step tree, in target's source syntax
	OutputProjection string
}

// NewOrchestratorContext builds the render context for one target. specs
// supplies the declared-outputs lookup used for the output-projection pass
// and for Call steps whose own referenced spec is reachable.
func NewOrchestratorContext(orch *specmodel.Orchestrator, specs map[string]*specmodel.Spec, target exprlang.Target) *OrchestratorContext {
	ctx := &OrchestratorContext{
		ID:          orch.ID,
		IDPascal:    ToPascalCase(orch.ID),
		IDCamel:     ToCamelCase(orch.ID),
		Description: orch.Description,
		Target:      string(target),
	}
	for _, v := range orch.Inputs {
		ctx.Inputs = append(ctx.Inputs, newVarView(v, orch.ID))
	}
	for _, v := range orch.Outputs {
		ctx.Outputs = append(ctx.Outputs, newVarView(v, orch.ID))
	}

	r := &stepRenderer{target: target, specs: specs, indent: indentUnit(target)}
	ctx.Body = r.renderSteps(orch.Chain, 1)
	ctx.OutputProjection = r.renderOutputProjection(orch.Outputs, orch.Chain)
	return ctx
}

func indentUnit(target exprlang.Target) string {
	return "    "
}

type stepRenderer struct {
	target exprlang.Target
	specs  map[string]*specmodel.Spec
	indent string
}

func (r *stepRenderer) pad(depth int) string {
	return strings.Repeat(r.indent, depth)
}

// renderSteps walks the chain tree, emitting one block of source text per
// step in target's idiom: all thirteen step kinds from the orchestrator
// data model are covered — call, parallel, branch, loop, foreach, gate,
// return, compute, set, try, dynamic, await, emit. Gate, dynamic, await and
// emit are written as comment lines, not executable statements.
func (r *stepRenderer) renderSteps(steps []specmodel.ChainStep, depth int) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(r.renderStep(s, depth))
	}
	return b.String()
}

func (r *stepRenderer) renderStep(s specmodel.ChainStep, depth int) string {
	pad := r.pad(depth)
	switch s.Kind {
	case specmodel.StepCall:
		return r.renderCall(s, depth)
	case specmodel.StepParallel:
		return r.renderParallel(s, depth)
	case specmodel.StepBranch:
		return r.renderBranch(s, depth)
	case specmodel.StepLoop:
		return r.renderLoop(s, depth)
	case specmodel.StepForEach:
		return r.renderForEach(s, depth)
	case specmodel.StepGate:
		return pad + r.line(fmt.Sprintf("gate: require %s", s.Expression)) + "\n"
	case specmodel.StepReturn:
		return pad + r.returnLine(s.Value) + "\n"
	case specmodel.StepCompute:
		return pad + r.assignLine(s.ID, s.Value) + "\n"
	case specmodel.StepSet:
		return pad + r.assignLine(s.ID, s.Value) + "\n"
	case specmodel.StepTry:
		return r.renderTry(s, depth)
	case specmodel.StepDynamic:
		return pad + r.line(fmt.Sprintf("dynamic call: spec = %s, allowed = [%s]", s.SpecExpr, strings.Join(s.Allowed, ", "))) + "\n"
	case specmodel.StepAwait:
		return pad + r.line(fmt.Sprintf("await %s", s.Target)) + "\n"
	case specmodel.StepEmit:
		return pad + r.line(fmt.Sprintf("emit %s", s.Event)) + "\n"
	default:
		return pad + r.line(fmt.Sprintf("unknown step kind %q", s.Kind)) + "\n"
	}
}

func (r *stepRenderer) renderCall(s specmodel.ChainStep, depth int) string {
	pad := r.pad(depth)
	var args []string
	for k, v := range s.Inputs {
		args = append(args, fmt.Sprintf("%s=%s", k, v))
	}
	binding := s.OutputAs
	if binding == "" {
		binding = "_"
	}
	switch r.target {
	case exprlang.Go:
		return fmt.Sprintf("%s%s, err := Call%s(ctx, %s)\n%sif err != nil {\n%s\treturn err\n%s}\n",
			pad, binding, ToPascalCase(s.Spec), strings.Join(args, ", "), pad, pad, pad)
	case exprlang.Python:
		return fmt.Sprintf("%s%s = call_%s(%s)\n", pad, binding, s.Spec, strings.Join(args, ", "))
	case exprlang.TypeScript:
		return fmt.Sprintf("%sconst %s = await call%s(%s);\n", pad, binding, ToPascalCase(s.Spec), strings.Join(args, ", "))
	case exprlang.Rust:
		return fmt.Sprintf("%slet %s = call_%s(%s)?;\n", pad, binding, s.Spec, strings.Join(args, ", "))
	case exprlang.Java:
		return fmt.Sprintf("%svar %s = call%s(%s);\n", pad, binding, ToPascalCase(s.Spec), strings.Join(args, ", "))
	case exprlang.CSharp:
		return fmt.Sprintf("%svar %s = await Call%s(%s);\n", pad, binding, ToPascalCase(s.Spec), strings.Join(args, ", "))
	}
	return pad + "// unsupported target for call step\n"
}

// renderParallel fans out over every branch using target's native
// concurrency idiom: goroutines+WaitGroup (Go), Task.WhenAll (C#),
// CompletableFuture.allOf (Java), asyncio.gather (Python), Promise.all
// (TypeScript), and std::thread::scope joins (Rust, which has no
// async-runtime assumption baked into the reference implementation).
func (r *stepRenderer) renderParallel(s specmodel.ChainStep, depth int) string {
	pad := r.pad(depth)
	var b strings.Builder
	switch r.target {
	case exprlang.Go:
		b.WriteString(pad + "{\n")
		b.WriteString(pad + r.indent + "var wg sync.WaitGroup\n")
		for _, branch := range s.Branches {
			b.WriteString(fmt.Sprintf("%swg.Add(1)\n%sgo func() {\n%sdefer wg.Done()\n", pad+r.indent, pad+r.indent, pad+r.indent+r.indent))
			b.WriteString(r.renderSteps([]specmodel.ChainStep{branch}, depth+3))
			b.WriteString(pad + r.indent + "}()\n")
		}
		b.WriteString(pad + r.indent + "wg.Wait()\n")
		b.WriteString(pad + "}\n")
	case exprlang.Python:
		b.WriteString(pad + "await asyncio.gather(\n")
		for _, branch := range s.Branches {
			b.WriteString(pad + r.indent + "branch(lambda: (\n")
			b.WriteString(r.renderSteps([]specmodel.ChainStep{branch}, depth+2))
			b.WriteString(pad + r.indent + ")),\n")
		}
		b.WriteString(pad + ")\n")
	case exprlang.TypeScript:
		b.WriteString(pad + "await Promise.all([\n")
		for _, branch := range s.Branches {
			b.WriteString(pad + r.indent + "(async () => {\n")
			b.WriteString(r.renderSteps([]specmodel.ChainStep{branch}, depth+2))
			b.WriteString(pad + r.indent + "})(),\n")
		}
		b.WriteString(pad + "]);\n")
	case exprlang.Java:
		b.WriteString(pad + "CompletableFuture.allOf(\n")
		for _, branch := range s.Branches {
			b.WriteString(pad + r.indent + "CompletableFuture.runAsync(() -> {\n")
			b.WriteString(r.renderSteps([]specmodel.ChainStep{branch}, depth+2))
			b.WriteString(pad + r.indent + "}),\n")
		}
		b.WriteString(pad + ").join();\n")
	case exprlang.CSharp:
		b.WriteString(pad + "await Task.WhenAll(\n")
		for _, branch := range s.Branches {
			b.WriteString(pad + r.indent + "Task.Run(() => {\n")
			b.WriteString(r.renderSteps([]specmodel.ChainStep{branch}, depth+2))
			b.WriteString(pad + r.indent + "}),\n")
		}
		b.WriteString(pad + ");\n")
	case exprlang.Rust:
		b.WriteString(pad + "std::thread::scope(|scope| {\n")
		for _, branch := range s.Branches {
			b.WriteString(pad + r.indent + "scope.spawn(|| {\n")
			b.WriteString(r.renderSteps([]specmodel.ChainStep{branch}, depth+2))
			b.WriteString(pad + r.indent + "});\n")
		}
		b.WriteString(pad + "});\n")
	}
	return b.String()
}

func (r *stepRenderer) renderBranch(s specmodel.ChainStep, depth int) string {
	pad := r.pad(depth)
	cond := compileOr(s.Condition, r.target, boolTrue(r.target))
	var b strings.Builder
	switch r.target {
	case exprlang.Python:
		b.WriteString(fmt.Sprintf("%sif %s:\n", pad, cond))
		b.WriteString(r.renderSteps(s.Then, depth+1))
		if len(s.Else) > 0 {
			b.WriteString(pad + "else:\n")
			b.WriteString(r.renderSteps(s.Else, depth+1))
		}
	default:
		b.WriteString(fmt.Sprintf("%sif %s {\n", pad, cond))
		b.WriteString(r.renderSteps(s.Then, depth+1))
		if len(s.Else) > 0 {
			b.WriteString(pad + "} else {\n")
			b.WriteString(r.renderSteps(s.Else, depth+1))
		}
		b.WriteString(pad + "}\n")
	}
	return b.String()
}

func (r *stepRenderer) renderLoop(s specmodel.ChainStep, depth int) string {
	pad := r.pad(depth)
	until := compileOr(s.Until, r.target, boolFalse(r.target))
	var b strings.Builder
	switch r.target {
	case exprlang.Python:
		b.WriteString(fmt.Sprintf("%sfor %s in range(%d):\n", pad, s.Counter, s.MaxIterations))
		b.WriteString(fmt.Sprintf("%s%sif %s:\n%s%sbreak\n", pad, r.indent, until, pad, r.indent+r.indent))
		b.WriteString(r.renderSteps(s.Body, depth+1))
	default:
		b.WriteString(fmt.Sprintf("%sfor %s := 0; %s < %d; %s++ {\n", pad, s.Counter, s.Counter, s.MaxIterations, s.Counter))
		b.WriteString(fmt.Sprintf("%s%sif %s {\n%s%sbreak\n%s%s}\n", pad, r.indent, until, pad, r.indent+r.indent, pad, r.indent))
		b.WriteString(r.renderSteps(s.Body, depth+1))
		b.WriteString(pad + "}\n")
	}
	return b.String()
}

func (r *stepRenderer) renderForEach(s specmodel.ChainStep, depth int) string {
	pad := r.pad(depth)
	item := s.ItemName
	if item == "" {
		item = "item"
	}
	var b strings.Builder
	switch r.target {
	case exprlang.Python:
		b.WriteString(fmt.Sprintf("%sfor %s in %s:\n", pad, item, s.Items))
		b.WriteString(r.renderSteps(s.Body, depth+1))
	case exprlang.Go:
		b.WriteString(fmt.Sprintf("%sfor _, %s := range %s {\n", pad, item, s.Items))
		b.WriteString(r.renderSteps(s.Body, depth+1))
		b.WriteString(pad + "}\n")
	default:
		b.WriteString(fmt.Sprintf("%sfor (const %s of %s) {\n", pad, item, s.Items))
		b.WriteString(r.renderSteps(s.Body, depth+1))
		b.WriteString(pad + "}\n")
	}
	return b.String()
}

func (r *stepRenderer) renderTry(s specmodel.ChainStep, depth int) string {
	pad := r.pad(depth)
	var b strings.Builder
	switch r.target {
	case exprlang.Python:
		b.WriteString(pad + "try:\n")
		b.WriteString(r.renderSteps(s.TrySteps, depth+1))
		for _, cb := range s.Catch {
			b.WriteString(fmt.Sprintf("%sexcept Exception:  # pattern: %s\n", pad, cb.ErrorPattern))
			b.WriteString(r.renderSteps(cb.Steps, depth+1))
		}
		if len(s.Finally) > 0 {
			b.WriteString(pad + "finally:\n")
			b.WriteString(r.renderSteps(s.Finally, depth+1))
		}
	default:
		b.WriteString(pad + "try {\n")
		b.WriteString(r.renderSteps(s.TrySteps, depth+1))
		for _, cb := range s.Catch {
			b.WriteString(fmt.Sprintf("%s} catch (e) { // pattern: %s\n", pad, cb.ErrorPattern))
			b.WriteString(r.renderSteps(cb.Steps, depth+1))
		}
		if len(s.Finally) > 0 {
			b.WriteString(pad + "} finally {\n")
			b.WriteString(r.renderSteps(s.Finally, depth+1))
		}
		b.WriteString(pad + "}\n")
	}
	return b.String()
}

func (r *stepRenderer) line(s string) string {
	switch r.target {
	case exprlang.Python:
		return "# " + s
	default:
		return "// " + s
	}
}

func (r *stepRenderer) returnLine(value string) string {
	switch r.target {
	case exprlang.Python:
		return "return " + value
	case exprlang.Rust:
		return "return " + value + ";"
	default:
		return "return " + value + ";"
	}
}

func (r *stepRenderer) assignLine(name, value string) string {
	switch r.target {
	case exprlang.Python:
		return fmt.Sprintf("%s = %s", name, value)
	case exprlang.Go:
		return fmt.Sprintf("%s := %s", name, value)
	case exprlang.Rust:
		return fmt.Sprintf("let %s = %s;", name, value)
	default:
		return fmt.Sprintf("const %s = %s;", name, value)
	}
}

func boolTrue(target exprlang.Target) string {
	if target == exprlang.Python {
		return "True"
	}
	return "true"
}

func boolFalse(target exprlang.Target) string {
	if target == exprlang.Python {
		return "False"
	}
	return "false"
}

// renderOutputProjection fills the orchestrator-codegen open question: every
// declared orchestrator output is projected out of the chain's step-scoped
// context by matching (name, declared type) against the outputs of every
// spec invoked by a Call step whose OutputAs binding produced that value —
// the same name+type matching pattern findChains already uses at the suite
// level, applied here to the per-step call sites instead.
func (r *stepRenderer) renderOutputProjection(outputs []specmodel.Variable, steps []specmodel.ChainStep) string {
	if len(outputs) == 0 {
		return ""
	}
	bindings := r.collectOutputBindings(steps)
	var b strings.Builder
	for _, out := range outputs {
		bind, ok := bindings[out.Name]
		src := bind.src
		if !ok || bind.typ != out.Type {
			b.WriteString(r.line(fmt.Sprintf("output %q has no matching call binding in this chain", out.Name)) + "\n")
			continue
		}
		switch r.target {
		case exprlang.Python:
			// dict, bracket assignment
			b.WriteString(fmt.Sprintf("result[\"%s\"] = %s\n", out.Name, src))
		case exprlang.Go:
			// map[string]any, bracket assignment
			b.WriteString(fmt.Sprintf("result[%q] = %s\n", out.Name, src))
		case exprlang.TypeScript:
			// Record<string, unknown>, bracket assignment
			b.WriteString(fmt.Sprintf("result[\"%s\"] = %s;\n", out.Name, src))
		case exprlang.CSharp:
			// Dictionary<string, object>, indexer assignment
			b.WriteString(fmt.Sprintf("result[\"%s\"] = %s;\n", out.Name, src))
		case exprlang.Java:
			// Map<String, Object> has no []=, only put
			b.WriteString(fmt.Sprintf("result.put(\"%s\", %s);\n", out.Name, src))
		case exprlang.Rust:
			// serde_json::Map<String, Value> has no IndexMut, only insert,
			// and insert needs a Value, not whatever src's native type is
			b.WriteString(fmt.Sprintf("result.insert(\"%s\".to_string(), serde_json::json!(%s));\n", out.Name, src))
		default:
			b.WriteString(r.line(fmt.Sprintf("unsupported target for output projection: %s", out.Name)) + "\n")
		}
	}
	return b.String()
}

// collectOutputBindings walks every Call step and, for each spec it invokes,
// maps that spec's declared output names to the step's OutputAs binding —
// the name+type match the orchestrator-codegen open question asks for,
// resolved against the spec registry passed to NewOrchestratorContext.
// Each binding keeps the spec output's declared type so the projection can
// require a type match as well as a name match.
type outputBinding struct {
	src string
	typ specmodel.VarType
}

func (r *stepRenderer) collectOutputBindings(steps []specmodel.ChainStep) map[string]outputBinding {
	bindings := map[string]outputBinding{}
	var walk func([]specmodel.ChainStep)
	walk = func(steps []specmodel.ChainStep) {
		for _, s := range steps {
			switch s.Kind {
			case specmodel.StepCall:
				if s.OutputAs == "" {
					continue
				}
				spec, ok := r.specs[s.Spec]
				if !ok {
					continue
				}
				for _, out := range spec.Outputs {
					bindings[out.Name] = outputBinding{src: s.OutputAs, typ: out.Type}
				}
			case specmodel.StepParallel:
				walk(s.Branches)
			case specmodel.StepBranch:
				walk(s.Then)
				walk(s.Else)
			case specmodel.StepLoop, specmodel.StepForEach:
				walk(s.Body)
			case specmodel.StepTry:
				walk(s.TrySteps)
				for _, cb := range s.Catch {
					walk(cb.Steps)
				}
				walk(s.Finally)
			}
		}
	}
	walk(steps)
	return bindings
}
