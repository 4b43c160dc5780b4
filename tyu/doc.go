// Package tyu implements the front-end of 3yu, a sigil-driven language in
// which every statement starts with a single marker character:
//   - `;text;` comments, `#path~` includes and bare `( ... )` scopes.
//   - `d name Type` register declarations and `:target value` assignments.
//   - `?cond (body)` conditionals, `@register value` calls and `` `value` `` returns.
//   - Two-operand arithmetic (`+ , - * / % l r`), relational (`= < > [ ] c t`)
//     and logical (`& | ! ^ 7 \ 1 6`) operators.
//
// Values are integer or float literals, quoted strings, special registers
// (`$3`, `$!`), named registers terminated by `~`, or nested scopes. Types use
// a one-letter alphabet: N I R C S E leaves, `L<size|_><type>` lists and
// `F<arg><ret>` functions.
//
// Parsing is a single pass over the source with one character of lookahead
// and aborts at the first error, which is reported as a *ParseError carrying
// the line and column of the offending character.
package tyu
