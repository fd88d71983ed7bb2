package eventlogger

import (
	"log"
)

type EventLogger struct {
	name   string
	logger *log.Logger
}

func InitEventLogger(name string, logger *log.Logger) *EventLogger {
	l := new(EventLogger)
	l.name = name
	l.logger = logger
	return l
}

func (el *EventLogger) Printf(message string, args ...any) {
	el.logger.Printf("%s: "+message, append([]any{el.name}, args...)...)
}

// Party

func (el *EventLogger) OnConsumed(guest int) {
	el.logger.Printf("%s: Guest %d ate the cupcake\n", el.name, guest)
}

func (el *EventLogger) OnRedundantVisit(guest int) {
	el.logger.Printf(
		"%s: Guest %d found a cupcake, but left as they had already eaten one\n", el.name, guest)
}

func (el *EventLogger) OnReplenished(guest int, round int) {
	el.logger.Printf(
		"%s: Leader %d requested a new cupcake, rounds counted: %d\n", el.name, guest, round)
}

func (el *EventLogger) OnFoundNothing(guest int) {
	el.logger.Printf("%s: Guest %d did not find a cupcake and left\n", el.name, guest)
}

func (el *EventLogger) OnConfirmed(rounds int, visits int) {
	el.logger.Printf(
		"%s: The leader has confirmed that all guests have visited the labyrinth at least once "+
			"(rounds: %d, visits: %d)\n", el.name, rounds, visits)
}

// Showroom

func (el *EventLogger) OnVaseViewed(guest int) {
	el.logger.Printf("%s: guest %d viewed the vase\n", el.name, guest+1)
}

func (el *EventLogger) OnServed(served int, total int) {
	el.logger.Printf("%s: served %d out of %d guests\n", el.name, served, total)
}

func (el *EventLogger) OnDispatcherState(state string) {
	el.logger.Printf("%s: dispatcher is %s\n", el.name, state)
}

func (el *EventLogger) OnAllViewed(served int) {
	el.logger.Printf("%s: all %d guests have viewed the vase\n", el.name, served)
}

func (el *EventLogger) OnTaskFailed(err error) {
	el.logger.Printf("%s: viewing failed: %v\n", el.name, err)
}

func (el *EventLogger) OnInterrupted(err error) {
	el.logger.Printf("%s: Wait interrupted: %v\n", el.name, err)
}
