package graphics

import (
	"context"
	"sync"
	"sync/atomic"
)

const (
	requestPending int32 = iota
	requestTaken
	requestCanceled
)

type request struct {
	fn    func()
	state atomic.Int32
	done  chan struct{}
}

// OwnerQueue は描画処理をオーナーのゴルーチンで実行させるキュー
// Do は処理がオーナーで実行されるか、コンテキストが終了するまで待つ
type OwnerQueue struct {
	pending []*request
	mu      sync.Mutex
}

// NewOwnerQueue は新しいOwnerQueueを作成する
func NewOwnerQueue() *OwnerQueue {
	return &OwnerQueue{
		pending: make([]*request, 0),
	}
}

// Do は fn をキューに追加し、オーナーが実行し終えるまで待つ（スレッドセーフ）
// 実行前にctxが終了した場合、fn は実行されずにctxのエラーを返す
func (q *OwnerQueue) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := &request{fn: fn, done: make(chan struct{})}
	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()

	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		if req.state.CompareAndSwap(requestPending, requestCanceled) {
			return ctx.Err()
		}
		// すでにオーナーが実行を始めている
		<-req.done
		return nil
	}
}

// popAll はキュー内のすべての要求を取り出して返す
func (q *OwnerQueue) popAll() []*request {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}

	result := make([]*request, len(q.pending))
	copy(result, q.pending)
	q.pending = q.pending[:0]

	return result
}

// Drain はキューにたまった処理を順に実行し、実行した数を返す
// オーナーのゴルーチン（ebitenのUpdateなど）から呼ぶ
func (q *OwnerQueue) Drain() int {
	count := 0
	for _, req := range q.popAll() {
		if !req.state.CompareAndSwap(requestPending, requestTaken) {
			continue
		}
		req.fn()
		close(req.done)
		count++
	}
	return count
}

// Len はキュー内の要求数を返す
func (q *OwnerQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
