// Package calc implements a safe evaluator for calculator expressions.
//
// An expression is the kind of thing typed into a scientific calculator:
// numbers, the binary operators + - * / % ^, parentheses, the constant PI,
// and the functions sin, cos, tan, sqrt, ln, and log10, e.g. "2*PI - sqrt(2)".
// "^" groups right, so "2^3^2" is "2^(3^2)". A "-" with nothing to its left
// starts a negative number, so "3*-2" is -6 and "-2^2" is 4; before a
// parenthesis, PI, or a function it negates, so "-(2)^2" is -4.
//
// Evaluation runs in three stages: Tokenize scans the text, ToRPN orders the
// tokens into postfix code with the shunting-yard algorithm, and EvalRPN runs
// the code on a stack. Eval does all three and rejects non-finite results.
// Compile keeps the code for repeated evaluation.
package calc
