package component

import "github.com/milk9111/robotboss/boss"

// Boss binds an entity to its controller. Agent is created from Config on
// the first update. Events collects what the agent reported until the script
// system consumes them.
type Boss struct {
	Agent  *boss.Agent
	Config boss.Config
	Script string
	Events []boss.Event
}

var BossComponent = NewComponent[Boss]()
