package motivator

import "github.com/dpramesti/habitd/pkg/habit"

var messages = map[habit.Personality]map[Context][]string{
	habit.PersonalityPositive: {
		ctxFirstDay: {
			"First step done. Every streak starts exactly like this!",
			"Day one in the books. Proud of you already!",
		},
		ctxCompleted: {
			"Nice work, that's how it's done!",
			"Another day, another win. Keep it up!",
			"Done and dusted. You're building something good here.",
		},
		ctxStreak: {
			"You're on a roll, don't stop now!",
			"Consistency looks good on you!",
			"That streak is growing. Love to see it!",
		},
		ctxMilestone: {
			"What a milestone! You've earned a little celebration.",
			"Huge achievement unlocked. This is becoming who you are!",
		},
		ctxComeback: {
			"Welcome back! What matters is that you returned.",
			"A break doesn't erase your progress. Great to see you again!",
		},
		ctxRelapse: {
			"Streaks end, habits don't. Tomorrow is a fresh start.",
			"One slip after all that progress? You'll bounce right back.",
		},
		ctxMissed: {
			"No worries, tomorrow's a new chance!",
			"Missed today, but you showed up to log it. That counts.",
		},
	},
	habit.PersonalityAdaptive: {
		ctxFirstDay: {
			"Day one logged. The hard part is doing it again tomorrow.",
			"Good start. Let's see what a week looks like.",
		},
		ctxCompleted: {
			"Done. Small days add up.",
			"Logged. Same again tomorrow?",
		},
		ctxStreak: {
			"Solid run going. Protect it.",
			"The streak is real now. Don't trade it cheap.",
		},
		ctxMilestone: {
			"That's a real milestone. Worth pausing on.",
			"Milestone reached. The habit is doing its job.",
		},
		ctxComeback: {
			"Back on track. Gaps happen; returning is the skill.",
			"Good recovery. Momentum beats perfection.",
		},
		ctxRelapse: {
			"That streak took work. Note what went wrong and restart.",
			"A miss after a long run stings. Use it.",
		},
		ctxMissed: {
			"Logged as missed. Honest tracking beats pretty numbers.",
			"Didn't happen today. Decide now when it happens tomorrow.",
		},
	},
	habit.PersonalityHarsh: {
		ctxFirstDay: {
			"One day. Anyone can do one day. Show me two.",
			"Day one means nothing yet. Come back tomorrow.",
		},
		ctxCompleted: {
			"Fine. That's the bare minimum.",
			"Done. Don't expect applause for doing what you said you'd do.",
		},
		ctxStreak: {
			"Decent streak. Would be a shame to waste it.",
			"Keeping it up, good. Breaking it would be on you.",
		},
		ctxMilestone: {
			"Alright, that's actually impressive. Don't get comfortable.",
			"Milestone hit. Now the real test: not stopping.",
		},
		ctxComeback: {
			"Took you long enough. Don't disappear again.",
			"Back, finally. Make the absence worth something.",
		},
		ctxRelapse: {
			"You torched that streak yourself. Rebuild it.",
			"All that work, gone in a day. Start over, smarter.",
		},
		ctxMissed: {
			"Skipped it. Excuses don't build habits.",
			"Another miss. You know exactly what went wrong.",
		},
	},
}
