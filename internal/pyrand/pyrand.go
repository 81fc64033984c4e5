// Package pyrand is a Mersenne Twister (MT19937) generator that seeds and draws
// exactly like CPython's random module, so shuffles made with the same integer
// seed match the ones produced by random.seed(n); random.shuffle(x).
//
// A Rand is not safe for concurrent use.
package pyrand

import (
	"math/big"
	"math/bits"
)

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Rand is a seeded MT19937 state.
type Rand struct {
	mt  [n]uint32
	mti int
}

// New returns a generator seeded like random.seed(seed).
func New(seed int64) *Rand {
	r := &Rand{}
	r.Seed(seed)
	return r
}

// Seed resets the state like random.seed(seed): the absolute value of the
// seed is split into little-endian 32-bit words and fed to init_by_array.
func (r *Rand) Seed(seed int64) {
	abs := new(big.Int).Abs(big.NewInt(seed))
	var key []uint32
	for _, w := range abs.Bits() {
		// big.Word is 32 or 64 bits depending on the platform.
		for shift := 0; shift < bits.UintSize; shift += 32 {
			key = append(key, uint32(uint(w)>>shift))
		}
	}
	for len(key) > 1 && key[len(key)-1] == 0 {
		key = key[:len(key)-1]
	}
	if len(key) == 0 {
		key = []uint32{0}
	}
	r.SeedArray(key)
}

// SeedArray is the reference init_by_array seeding.
func (r *Rand) SeedArray(key []uint32) {
	r.seedScalar(19650218)
	i, j := 1, 0
	k := max(n, len(key))
	for ; k > 0; k-- {
		r.mt[i] = (r.mt[i] ^ ((r.mt[i-1] ^ (r.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			r.mt[0] = r.mt[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		r.mt[i] = (r.mt[i] ^ ((r.mt[i-1] ^ (r.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			r.mt[0] = r.mt[n-1]
			i = 1
		}
	}
	r.mt[0] = 0x80000000
	r.mti = n
}

// seedScalar is the reference init_genrand seeding.
func (r *Rand) seedScalar(s uint32) {
	r.mt[0] = s
	for i := 1; i < n; i++ {
		r.mt[i] = 1812433253*(r.mt[i-1]^(r.mt[i-1]>>30)) + uint32(i)
	}
	r.mti = n
}

// Uint32 returns the next tempered 32-bit output (genrand_int32).
func (r *Rand) Uint32() uint32 {
	if r.mti >= n {
		r.generate()
	}
	y := r.mt[r.mti]
	r.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func (r *Rand) generate() {
	mag01 := [2]uint32{0, matrixA}
	var kk int
	for kk = 0; kk < n-m; kk++ {
		y := (r.mt[kk] & upperMask) | (r.mt[kk+1] & lowerMask)
		r.mt[kk] = r.mt[kk+m] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < n-1; kk++ {
		y := (r.mt[kk] & upperMask) | (r.mt[kk+1] & lowerMask)
		r.mt[kk] = r.mt[kk+(m-n)] ^ (y >> 1) ^ mag01[y&1]
	}
	y := (r.mt[n-1] & upperMask) | (r.mt[0] & lowerMask)
	r.mt[n-1] = r.mt[m-1] ^ (y >> 1) ^ mag01[y&1]
	r.mti = 0
}

// Getrandbits returns a value with k random bits, 1 <= k <= 32.
func (r *Rand) Getrandbits(k int) uint32 {
	if k <= 0 || k > 32 {
		panic("pyrand: Getrandbits k out of range [1, 32]")
	}
	return r.Uint32() >> (32 - k)
}

// Randbelow returns a uniform value in [0, bound) by rejection sampling on
// Getrandbits(bit length of n), like random._randbelow.
func (r *Rand) Randbelow(bound int) int {
	if bound <= 0 {
		panic("pyrand: Randbelow argument must be positive")
	}
	k := bits.Len(uint(bound))
	if k > 32 {
		panic("pyrand: Randbelow argument exceeds 32 bits")
	}
	v := int(r.Getrandbits(k))
	for v >= bound {
		v = int(r.Getrandbits(k))
	}
	return v
}

// Float64 returns a value in [0, 1) with 53 bits of precision, like random.random.
func (r *Rand) Float64() float64 {
	a := r.Uint32() >> 5
	b := r.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Shuffle permutes count elements in place using swap, walking from the last
// index down like random.shuffle.
func (r *Rand) Shuffle(count int, swap func(i, j int)) {
	for i := count - 1; i > 0; i-- {
		j := r.Randbelow(i + 1)
		swap(i, j)
	}
}
