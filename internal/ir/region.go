package ir

import (
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/irgraph/irgraph/internal/irerrors"
)

// Region owns a collection of basic blocks, designates a start and final
// block, allocates block and operation ids, and caches dominator/loop
// analyses with explicit expiry flags (I8). Region is the "unit of
// ownership": two regions sharing no blocks or operations may be mutated
// independently on different goroutines, but a single region is owned by
// one mutator at a time — mu is a deadlock-detecting guard around the
// region-level structural API, not a general-purpose concurrency story.
type Region struct {
	mu deadlock.Mutex

	name   string
	blocks []*BasicBlock
	start  *BasicBlock
	final  *BasicBlock

	nextBlockID BlockID
	nextOpID    OpID

	dom  domInfo
	loop loopInfo
}

// NewRegion constructs an empty, named region. An empty name is a
// construction-time ShapeError.
func NewRegion(name string) (*Region, error) {
	if name == "" {
		return nil, newShapeError(irerrors.CodeEmptyRegionName, "region name must not be empty")
	}
	r := &Region{name: name}
	r.dom.expired = true
	r.loop.expired = true
	return r, nil
}

// Name returns this region's name.
func (r *Region) Name() string { return r.name }

// Blocks returns a snapshot of this region's owned blocks, in insertion
// order.
func (r *Region) Blocks() []*BasicBlock {
	out := make([]*BasicBlock, len(r.blocks))
	copy(out, r.blocks)
	return out
}

// StartBlock returns the designated start block, or nil if unset.
func (r *Region) StartBlock() *BasicBlock { return r.start }

// FinalBlock returns the designated final block, or nil if unset.
func (r *Region) FinalBlock() *BasicBlock { return r.final }

func (r *Region) obtainIDForBasicBlock() BlockID {
	id := r.nextBlockID
	r.nextBlockID++
	return id
}

// ObtainIDForOperation allocates the next operation id for this region. It
// is exported so the Builder (C8) can stamp ids on ops as they are created.
func (r *Region) ObtainIDForOperation() OpID {
	id := r.nextOpID
	r.nextOpID++
	return id
}

func (r *Region) expireAnalyses() {
	r.dom.expired = true
	r.loop.expired = true
}

// AddBasicBlock creates, registers, and returns a new block owned by this
// region, with neither start- nor final-block status.
func (r *Region) AddBasicBlock() *BasicBlock {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addBasicBlockLocked()
}

func (r *Region) addBasicBlockLocked() *BasicBlock {
	b := &BasicBlock{id: r.obtainIDForBasicBlock(), parent: r}
	r.blocks = append(r.blocks, b)
	r.expireAnalyses()
	return b
}

// AddStartBasicBlock creates a new block, registers it, and designates it
// as this region's start block.
func (r *Region) AddStartBasicBlock() *BasicBlock {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.addBasicBlockLocked()
	r.start = b
	return b
}

// AddFinalBasicBlock creates a new block, registers it, and designates it
// as this region's final block.
func (r *Region) AddFinalBasicBlock() *BasicBlock {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.addBasicBlockLocked()
	r.final = b
	return b
}

// GetBasicBlockByID returns the block with the given id, or nil.
func (r *Region) GetBasicBlockByID(id BlockID) *BasicBlock {
	for _, b := range r.blocks {
		if b.id == id {
			return b
		}
	}
	return nil
}

// IsBasicBlockPresent reports whether b is owned by this region.
func (r *Region) IsBasicBlockPresent(b *BasicBlock) bool {
	for _, own := range r.blocks {
		if own == b {
			return true
		}
	}
	return false
}

// SetStartBasicBlockByID designates the block with the given id as start,
// returning false if no such block exists.
func (r *Region) SetStartBasicBlockByID(id BlockID) bool {
	if b := r.GetBasicBlockByID(id); b != nil {
		r.start = b
		return true
	}
	return false
}

// SetStartBasicBlock designates b as start, returning false if b is not
// owned by this region.
func (r *Region) SetStartBasicBlock(b *BasicBlock) bool {
	if r.IsBasicBlockPresent(b) {
		r.start = b
		return true
	}
	return false
}

// SetFinalBasicBlockByID designates the block with the given id as final,
// returning false if no such block exists.
func (r *Region) SetFinalBasicBlockByID(id BlockID) bool {
	if b := r.GetBasicBlockByID(id); b != nil {
		r.final = b
		return true
	}
	return false
}

// SetFinalBasicBlock designates b as final, returning false if b is not
// owned by this region.
func (r *Region) SetFinalBasicBlock(b *BasicBlock) bool {
	if r.IsBasicBlockPresent(b) {
		r.final = b
		return true
	}
	return false
}

// RemoveBasicBlock unlinks and removes b from the region, returning false
// if b is not owned by this region.
func (r *Region) RemoveBasicBlock(b *BasicBlock) bool {
	return r.RemoveBasicBlockByID(b.id)
}

// RemoveBasicBlockByID unlinks and removes the block with the given id,
// returning false if no such block exists.
func (r *Region) RemoveBasicBlockByID(id BlockID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.blocks {
		if b.id == id {
			b.Unlink()
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			if r.start == b {
				r.start = nil
			}
			if r.final == b {
				r.final = nil
			}
			r.expireAnalyses()
			return true
		}
	}
	return false
}

// ReplaceBasicBlockWith swaps newBlock into old's slot in the region,
// transferring old's CFG edges and start/final designation onto it.
func (r *Region) ReplaceBasicBlockWith(old, newBlock *BasicBlock) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.blocks {
		if b == old {
			newBlock.parent = r
			newBlock.id = old.id
			old.ReplaceWith(newBlock)

			if r.start == old {
				r.start = newBlock
			}
			if r.final == old {
				r.final = newBlock
			}

			r.blocks[i] = newBlock
			r.expireAnalyses()
			return true
		}
	}
	return false
}

func (r *Region) runDFS(b *BasicBlock, visited map[*BasicBlock]bool, order *[]*BasicBlock) {
	if visited[b] {
		return
	}
	visited[b] = true

	if succ := b.Succ(true); succ != nil {
		r.runDFS(succ, visited, order)
	}
	if succ := b.Succ(false); succ != nil {
		r.runDFS(succ, visited, order)
	}

	*order = append(*order, b)
}

// GetDFS returns a post-order listing of blocks reachable from the start
// block, recursing through the true successor then the false successor and
// appending each block on post-visit. Fails if no start block is set.
func (r *Region) GetDFS() ([]*BasicBlock, error) {
	if r.start == nil {
		return nil, newVerificationFailure(irerrors.CodeNoStartBlock, "cannot run DFS with no start basic block specified")
	}
	var order []*BasicBlock
	r.runDFS(r.start, make(map[*BasicBlock]bool), &order)
	return order, nil
}

// GetRPO returns the reverse of GetDFS.
func (r *Region) GetRPO() ([]*BasicBlock, error) {
	order, err := r.GetDFS()
	if err != nil {
		return nil, err
	}
	out := make([]*BasicBlock, len(order))
	for i, b := range order {
		out[len(order)-1-i] = b
	}
	return out, nil
}

// Verify checks every block's structural invariants, in insertion order,
// returning the first violation found, folded into a region-level
// VerificationFailure that names the offending block.
func (r *Region) Verify() error {
	for _, b := range r.blocks {
		isStart := b == r.start
		isFinal := b == r.final
		if err := b.Verify(isStart, isFinal); err != nil {
			return wrapVerification(irerrors.CodeBlockVerification, errors.Wrapf(err, "bb%d", b.id))
		}
	}
	return nil
}
