/* Command putt: a tiny reverse-Polish stack language.

A putt program is a flat sequence of tokens. Literal tokens push a value onto
the stack; operation tokens pop their operands from it and push their results.
So "2 3*1+" computes 2*3+1, leaving 7 on the stack, and the value on top of
the stack when the program ends is its result. A sign directly before digits
is part of the number: "2 3+11*1+" pushes 2, 3 and +11, multiplies, then adds
1, leaving 34 on top of a 2.

There is one kind of data, the Value, which is one of:
  - a Number, a 64-bit float; booleans are the Numbers 1 and 0
  - a Text, a string
  - a List of Numbers, built by the range operation

Literals

  42 -7 +5 3.25    numbers; a leading sign binds to the digits
  #t #f            the Numbers 1 and 0
  "Hello!"         text, with no escape sequences
  `<payload>`      compressed text, decoded when the program is read
  XIV MMXXIV Xk    Roman numerals: any other word of letters

Roman numerals run from I up to Mk (a million): an upper case symbol followed
by "k" is a thousand times its usual value. Symbols are stripped greedily from
the front of a word until one fails to match, so a word that starts with no
symbol at all, like "x" or "hello", is simply 0.

Operations

  + -              add or subtract Numbers; both concatenate two Texts
  * / ^ %          multiply, divide, power, and float remainder
  R !              square root and factorial
  =                1 if the top two values are equal, else 0
  n                not: 1 becomes 0, anything else becomes 1
  neg abs          negate and absolute value
  range            replace a and b with the List a, a+1, ... b
  sum avg          pop a count n, then total (or average) n more values
  len              push the stack depth
  swap dup drop    rearrange the top of the stack
  clear            empty the stack
  jmp              pop a tape index and continue execution there
  . ,              print the top value, followed by a space or a line feed
  cmp dmp          compress or decompress a Text

Keywords are not case sensitive, apart from the single letters n and R.

Execution

The whole program is tokenized first, into a tape. A program counter then
walks the tape from index 0, dispatching one token at a time, until it runs
off the end. The jmp operation overwrites the program counter, so a program
like "0 jmp" loops forever; use -max-steps or -timeout to bound such runs.

Any failed operation stops the run with a typed error, and leaves the stack as
it was before that operation: operands are checked before they are popped.

Usage

	putt [flags] [FILE | -]

With a FILE, runs it and prints its result; "-" reads the program from
standard input. With -e, runs its argument.
Otherwise starts an interactive REPL. Settings may also be given in a YAML
file, by default putt/config.yaml under the user configuration directory.
*/
package main
