package cli

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"github.com/andaru/collectxml/recordxml"
)

// policyEnv is the environment of fail policy expressions.
type policyEnv struct {
	Failures  int  `expr:"failures"`
	Warnings  int  `expr:"warnings"`
	HasRecord bool `expr:"hasRecord"`
	Filled    int  `expr:"filled"`
}

func newPolicyEnv(res *recordxml.Result) policyEnv {
	env := policyEnv{
		Failures:  len(res.Failures),
		Warnings:  len(res.Warnings),
		HasRecord: res.Record != nil,
	}
	if res.Record != nil {
		env.Filled = res.Record.Summary.FilledAttributes
	}
	return env
}

// failPolicy decides whether a parse result counts as failed.
type failPolicy struct {
	expression string
	program    *vm.Program
}

func compilePolicy(expression string) (*failPolicy, error) {
	program, err := expr.Compile(expression, expr.Env(policyEnv{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "fail-on %q", expression)
	}
	return &failPolicy{expression: expression, program: program}, nil
}

// Fails evaluates the policy for res.
func (p *failPolicy) Fails(res *recordxml.Result) (bool, error) {
	out, err := expr.Run(p.program, newPolicyEnv(res))
	if err != nil {
		return false, errors.Wrapf(err, "fail-on %q", p.expression)
	}
	fails, _ := out.(bool)
	return fails, nil
}
