package parallel

import "fmt"

// DynBuffer is a growable message queue with cheap reset.
type DynBuffer[T any] struct {
	cells []T
}

func NewDynBuffer[T any](capacity int) *DynBuffer[T] {
	return &DynBuffer[T]{cells: make([]T, 0, capacity)}
}

func (db *DynBuffer[T]) Add(msg T)  { db.cells = append(db.cells, msg) }
func (db *DynBuffer[T]) Cells() []T { return db.cells }
func (db *DynBuffer[T]) Reset()     { db.cells = db.cells[:0] }

// MailBox carries typed messages between ranks. Each rank posts into its own
// outbox queues, delivers them to the target ranks' channels, then receives
// what landed on its channel. The pattern per step is:
// for range messages {Post}; Deliver; barrier; Receive; Clear.
type MailBox[T any] struct {
	NP           int
	MessageChans []chan *DynBuffer[T]    // one for each rank
	PostMsgQs    []map[int]*DynBuffer[T] // one for each rank, key is target rank
	ReceiveMsgQs []*DynBuffer[T]         // one for each rank
	MailFlag     []bool                  // rank has messages in its outbox
}

func NewMailBox[T any](NP int) *MailBox[T] {
	mb := &MailBox[T]{
		NP:           NP,
		MessageChans: make([]chan *DynBuffer[T], NP),
		PostMsgQs:    make([]map[int]*DynBuffer[T], NP),
		ReceiveMsgQs: make([]*DynBuffer[T], NP),
		MailFlag:     make([]bool, NP),
	}
	for n := 0; n < NP; n++ {
		mb.MessageChans[n] = make(chan *DynBuffer[T], NP) // worst case is all-to-all
		mb.PostMsgQs[n] = make(map[int]*DynBuffer[T])
		mb.ReceiveMsgQs[n] = NewDynBuffer[T](0)
	}
	return mb
}

func (mb *MailBox[T]) PostMessage(myRank, targetRank int, msg T) {
	if _, exists := mb.PostMsgQs[myRank][targetRank]; !exists {
		mb.PostMsgQs[myRank][targetRank] = NewDynBuffer[T](0)
	}
	mb.PostMsgQs[myRank][targetRank].Add(msg)
	mb.MailFlag[myRank] = true
}

func (mb *MailBox[T]) PostMessageToAll(myRank int, msg T) {
	for k := 0; k < mb.NP; k++ {
		if k != myRank {
			mb.PostMessage(myRank, k, msg)
		}
	}
}

func (mb *MailBox[T]) DeliverMyMessages(myRank int) {
	if !mb.MailFlag[myRank] {
		return
	}
	for targetRank, msgBuffer := range mb.PostMsgQs[myRank] {
		if targetRank < 0 || targetRank > mb.NP-1 {
			panic(fmt.Sprintf("target rank %d out of bounds", targetRank))
		}
		mb.MessageChans[targetRank] <- msgBuffer
	}
	mb.MailFlag[myRank] = false
}

func (mb *MailBox[T]) ReceiveMyMessages(myRank int) {
	for {
		select {
		case msgBuffer := <-mb.MessageChans[myRank]:
			for _, msg := range msgBuffer.Cells() {
				mb.ReceiveMsgQs[myRank].Add(msg)
			}
			msgBuffer.Reset() // reset the originating buffer
		default:
			return
		}
	}
}

func (mb *MailBox[T]) ClearMyMessages(myRank int) {
	mb.ReceiveMsgQs[myRank].Reset()
}
