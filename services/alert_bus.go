package services

import "fmt"

type alertDeps struct {
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{rt: rt, ps: ps}
}

// EmitGoalReached notifies every surface that today's protein goal was hit.
// Safe to call anywhere, including before InitAlertDeps.
func EmitGoalReached(userID uint, todayProtein, goal float64) {
	msg := fmt.Sprintf("You hit your protein goal: %.1fg of %.1fg", todayProtein, goal)

	if _alert.rt != nil {
		_alert.rt.Broadcast(userID, map[string]any{
			"kind":          "goal.reached",
			"today_protein": todayProtein,
			"goal":          goal,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "Goal reached", msg, map[string]string{
			"type": "goal.reached",
		})
	}
}
