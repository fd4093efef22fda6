package openaddr

/*
	This hash set implementation uses a closed hashing (open addressing) technique with
	linear probing for resolving any hash collisions. The exact algorithm it utilizes
	is called 'robin hood hashing.' More information about this can technique can be found
	in the links provided below:
	01) https://andre.arko.net/2017/08/24/robin-hood-hashing/
	02) https://cs.uwaterloo.ca/research/tr/1986/CS-86-14.pdf
	03) https://www.sebastiansylvan.com/post/robin-hood-hashing-should-be-your-default-hash-table-implementation/
	04) http://codecapsule.com/2013/11/11/robin-hood-hashing/
	05) http://codecapsule.com/2013/11/17/robin-hood-hashing-backward-shift-deletion/
	The basic principal is:
	-----------------------
	1) Calculate the hash value and home slot of the key to be inserted
	2) Search the position in the array linearly, keeping the displacement
	   (distance from the home slot) of the key we are carrying
	3) If we find an empty or tombstoned slot, place the key there
	4) If we encounter a key whose displacement is less than ours, swap them
	   and keep going with the key we just evicted
	5) Keep track of the largest displacement ever placed. No live key can sit
	   further than that from its home slot, so a lookup never needs to look
	   at more than maxDisplacement+1 slots
	Removal either leaves a tombstone behind (the default) or shifts the
	following keys back by one slot (BackwardShift). Tombstones are only
	reclaimed when the table grows and is rebuilt from the live keys.
*/
