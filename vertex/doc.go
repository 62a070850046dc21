// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vertex implements the packed chunk vertex format shared by the
// mesh builder and the block shaders.
//
// A vertex is two 32-bit words:
//
//	word0: | corner:2 | z:10 | y:10 | x:10 |   (bit 31 .. bit 0)
//	word1: | texture:24 | ao3:2 | ao2:2 | ao1:2 | ao0:2 |
//
// Coordinates are signed 10-bit two's-complement values in half-block units,
// so a decoded axis spans [-256.0, 255.5] in steps of 0.5. The corner index
// selects one of four canonical UV coordinates (see [UV]). The texture field
// addresses a layer of the material's texture array, and the four AO codes
// carry the occlusion of the quad's corners.
//
// Decoding is total: every pair of words decodes to some vertex. Validation
// belongs to the producer, which is why [Encode] checks its input and [Pack]
// does not.
//
// The same layout is decoded by the vertex stage of block.wgsl; the
// constants in this package are the single source of truth for both sides.
package vertex
