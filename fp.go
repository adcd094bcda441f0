/*
Package fp is a linear algebra library over the prime fields F_p.
Vectors are bit-packed into 64-bit limbs and their kernels are dispatched to
the widest lane width supported by the host. Matrices are row reduced to
reduced row echelon form, with the Method of the Four Russians over F_2, and
back subspaces, subquotients, affine subspaces and quasi-inverses of linear
maps.
*/
package fp
