package training

import (
	"sync"

	"snake-core/ai"
)

// AgentPool holds the agents of the current generation.
type AgentPool struct {
	agents []*ai.QLearning
	mutex  sync.RWMutex
}

// NewAgentPool creates numAgents fresh agents. Agent i explores with seed+i.
func NewAgentPool(numAgents int, seed uint64) *AgentPool {
	pool := &AgentPool{
		agents: make([]*ai.QLearning, numAgents),
	}
	for i := range numAgents {
		pool.agents[i] = ai.NewQLearning(seed + uint64(i))
	}
	return pool
}

// GetAgent returns the agent at index, or nil.
func (p *AgentPool) GetAgent(index int) *ai.QLearning {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if index >= 0 && index < len(p.agents) {
		return p.agents[index]
	}
	return nil
}

// GetAllAgents returns a copy of the agent list.
func (p *AgentPool) GetAllAgents() []*ai.QLearning {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return append([]*ai.QLearning(nil), p.agents...)
}

// Best returns the agent with the highest total reward. Ties keep the lower
// index.
func (p *AgentPool) Best() *ai.QLearning {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	var best *ai.QLearning
	for _, agent := range p.agents {
		if best == nil || agent.TotalReward > best.TotalReward {
			best = agent
		}
	}
	return best
}

// NextGeneration replaces every agent with a mutated child of parent. The
// first child is an exact copy so the best table is never lost.
func (p *AgentPool) NextGeneration(parent *ai.QLearning, seed uint64, mutationRate float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for i := range p.agents {
		rate := mutationRate
		if i == 0 {
			rate = 0
		}
		p.agents[i] = parent.Breed(seed+uint64(i), rate)
	}
}
