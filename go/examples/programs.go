// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

func GetFactorialExample() Example {
	return exampleSpec{
		Name:        "factorial",
		Description: "n! using a loop over data memory",
		body: `
    STORE 0    // n
    PUSH 1
    STORE 1    // result
loop:
    LOAD 0
    JZ done
    LOAD 1
    LOAD 0
    MUL
    STORE 1
    LOAD 0
    PUSH 1
    SUB
    STORE 0
    JMP loop
done:
    LOAD 1
    HALT
`,
		reference: factorial,
	}.build()
}

func factorial(n int32) int32 {
	res := int32(1)
	for i := int32(2); i <= n; i++ {
		res *= i
	}
	return res
}

func GetFibExample() Example {
	return exampleSpec{
		Name:        "fib",
		Description: "the n-th Fibonacci number, computed iteratively",
		body: `
    STORE 0    // n
    PUSH 0
    STORE 1    // a
    PUSH 1
    STORE 2    // b
loop:
    LOAD 0
    JZ done
    LOAD 2
    LOAD 1
    LOAD 2
    ADD
    STORE 2    // b = a + b
    STORE 1    // a = b
    LOAD 0
    PUSH 1
    SUB
    STORE 0
    JMP loop
done:
    LOAD 1
    HALT
`,
		reference: fib,
	}.build()
}

func fib(n int32) int32 {
	a, b := int32(0), int32(1)
	for ; n > 0; n-- {
		a, b = b, a+b
	}
	return a
}

func GetSumOfSquaresExample() Example {
	return exampleSpec{
		Name:        "sum-of-squares",
		Description: "1*1 + 2*2 + ... + n*n using a subroutine",
		body: `
    STORE 0    // n
    PUSH 0     // sum
loop:
    LOAD 0
    JZ done
    LOAD 0
    CALL square
    ADD
    LOAD 0
    PUSH 1
    SUB
    STORE 0
    JMP loop
done:
    HALT

// replaces the top of the stack by its square
square:
    DUP
    MUL
    RET
`,
		reference: sumOfSquares,
	}.build()
}

func sumOfSquares(n int32) int32 {
	res := int32(0)
	for i := int32(1); i <= n; i++ {
		res += i * i
	}
	return res
}

func GetCollatzExample() Example {
	return exampleSpec{
		Name:        "collatz",
		Description: "the number of Collatz steps needed to reach 1 from n",
		body: `
    STORE 0    // n
    PUSH 0
    STORE 1    // steps
loop:
    LOAD 0
    PUSH 1
    SUB
    JZ done
    LOAD 0     // n - n/2*2
    LOAD 0
    PUSH 2
    DIV
    PUSH 2
    MUL
    SUB
    JZ even
    LOAD 0
    PUSH 3
    MUL
    PUSH 1
    ADD
    STORE 0
    JMP next
even:
    LOAD 0
    PUSH 2
    DIV
    STORE 0
next:
    LOAD 1
    PUSH 1
    ADD
    STORE 1
    JMP loop
done:
    LOAD 1
    HALT
`,
		reference: collatz,
	}.build()
}

func collatz(n int32) int32 {
	steps := int32(0)
	for n != 1 {
		if n%2 == 0 {
			n /= 2
		} else {
			n = 3*n + 1
		}
		steps++
	}
	return steps
}
