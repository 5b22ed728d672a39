// Package binmap implements the two-level segregated-fit size index.
//
// # Overview
//
// Free blocks are indexed by a pair of class indices (L1, L2). The first
// level partitions sizes by power of two, the second level splits each
// power-of-two range linearly into 16 subranges. A 22-bit first-level
// bitmap and one 16-bit word per first-level class make "find the smallest
// class >= this one with a free block" a shift followed by a
// count-trailing-zeros, so bin lookup is O(1).
//
// # Size classes
//
// With BaseL1Log2=10 and L2Log2=4 the classes are:
//
//	(0,0)        [0, 2048)        everything below two pages of granularity
//	(1,{0,8})    [2048, 4096)     two subranges of 1024
//	(2,{0,4,8,12})  [4096, 8192)  four subranges of 1024
//	(3,{0,2,..,14}) [8192, 16384) eight subranges of 1024
//	(i>=4, 0..15)   [2^(i+10), 2^(i+11)) in 16 equal steps
//
// Low first-level classes have fewer than four significant bits below the
// leading bit, so only a sparse subset of their 16 slots is ever populated;
// MapSize places those bits at the top of the L2 index to keep class order
// identical to size order.
//
// # Directory
//
// Directory holds the bitmaps plus the head of the doubly-linked free list
// for every (L1, L2) pair. The directory stores block indices only; list
// splicing is the allocator's job.
package binmap
