package main

import (
	"log"

	"vitalog/config"
	"vitalog/routes"
	"vitalog/services"
	"vitalog/utils"
)

func main() {
	config.InitLogger()
	config.InitDB()
	utils.InitS3()

	kv, err := services.NewKVStoreFromEnv()
	if err != nil {
		log.Fatalf("records store init failed: %v", err)
	}

	store := services.NewRecordStore(kv)
	streaks := services.NewStreakService(store, 60)
	achievements := services.NewAchievementService(store, streaks)
	checkins := services.NewCheckinService(store, streaks, achievements)
	insights := services.NewInsightService(store)
	digest := services.NewDigestService(insights)

	rt := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		config.Log.Warnf("push service disabled: %v", err)
		push = nil
	}
	services.InitAlertDeps(config.DB, rt, push)

	r := routes.SetupRouter(routes.Deps{
		Store:        store,
		Checkins:     checkins,
		Insights:     insights,
		Achievements: achievements,
		Digest:       digest,
		Push:         push,
		RT:           rt,
	})
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
