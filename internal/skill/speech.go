// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"fmt"
	"time"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// Fixed phrases.
const (
	speechWelcomeQuick    = "Welcome back. What BPM beat should I play at, or do you want to play a custom sequence?"
	speechWelcomeLong     = "Welcome to Metronome Pro! You can say, play a beat at 80bpm for 30 seconds, or, play a beat at Andante or, play a custom sequence"
	speechHelp            = "You can say, play a beat at 80bpm for 30 seconds, or, play a beat at Andante or, play a custom sequence"
	speechChooseBPM       = "Please choose a BPM!"
	speechDidntUnderstand = "I didn't understand that, please try again."
	speechNotPlaying      = "I'm not playing a beat right now. What BPM should I play?"
	speechGoodbye         = "Goodbye!"
	speechNotApplicable   = "You can't do that with a metronome."
	speechNoPrevious      = "There isn't a sequence before this one."
	speechNoNext          = "There isn't a sequence after this one."
	speechApology         = "Sorry, I had trouble doing what you asked. Please try again."

	speechNewSequenceReprompt = "For example, say '40 bpm for 20 seconds"
	speechNoDuration          = "Please specify a duration."
	speechNotEditing          = "You're not making a custom sequence right now."
	speechCancelledEdit       = "Okay, I didn't save anything."
	speechChooseName          = "Please choose a name."
	speechUpsell              = "Custom Sequences let you create, save, and play sets of beats from your Alexa device. Wanna know more?"
	speechAlreadyPurchased    = "You've already got Custom Sequences. Choose one to play, or create a new one."

	cardWelcomeTitle = "Metronome Pro"
	cardHelpTitle    = "Need a hand?"
)

func speechAlreadyPlaying(bpm model.BPM) string {
	return fmt.Sprintf("I'm playing a %d BPM beat right now. You can say speed up, slow down, or choose another BPM to play at", bpm)
}

func speechUnknownTempo(name string) string {
	return fmt.Sprintf("I don't know the tempo %s, please try again", name)
}

func speechBPMOutOfRange(lo, hi, got model.BPM) string {
	return fmt.Sprintf("The BPM needs to be between %d and %d, you said %d BPM.", lo, hi, got)
}

func speechDurationOutOfRange(lo, hi, got time.Duration) string {
	return fmt.Sprintf("The duration needs to be between %s and %s, you said %s.",
		spokenDuration(lo), spokenDuration(hi), spokenDuration(got))
}

func speechPlayingBeat(bpm model.BPM, d model.Duration) string {
	if d.IsForever() {
		return fmt.Sprintf("Playing a beat at %d BPM", bpm)
	}
	return fmt.Sprintf("Playing a beat at %d BPM for %s", bpm, spokenSeconds(d.Seconds()))
}

func speechResuming(bpm model.BPM) string {
	return fmt.Sprintf("Resuming beat at %d BPM", bpm)
}

func speechStartingOver(bpm model.BPM) string {
	return fmt.Sprintf("Starting over from the beginning at %d BPM", bpm)
}

func speechPrevious(bpm model.BPM) string {
	return fmt.Sprintf("Going back to the beat at %d BPM", bpm)
}

func speechNext(bpm model.BPM) string {
	return fmt.Sprintf("Going to the next beat at %d BPM", bpm)
}

func speechSpeedingUp(bpm model.BPM) string {
	return fmt.Sprintf("Speeding up to %d BPM", bpm)
}

func speechSlowingDown(bpm model.BPM) string {
	return fmt.Sprintf("Slowing down to %d BPM", bpm)
}

func speechChooseSequence(n int) string {
	return fmt.Sprintf("You have %s. Choose which one to play, or create a new one.", plural(n, "custom sequence"))
}

func speechYourSequences(lib model.Library) string {
	names := make([]string, len(lib))
	for i, s := range lib {
		names[i] = s.Name
	}
	return fmt.Sprintf("You have %s: %s", plural(len(lib), "sequence"), spokenList(names))
}

const newSequenceExplainer = "It can have up to %d parts, and each part has a different BPM and plays for a certain amount of seconds. When you're ready, tell me the BPM and duration for the first part."

func speechNoSequences(maxParts int) string {
	return fmt.Sprintf("You don't have any custom sequences, let's make one. "+newSequenceExplainer, maxParts)
}

func speechNewSequence(maxParts int) string {
	return fmt.Sprintf("Let's make a new sequence. "+newSequenceExplainer, maxParts)
}

func speechPlayingSequence(name string) string {
	return "Playing custom sequence " + name
}

func speechUnknownSequence(name string) string {
	return "I don't have the custom sequence " + name
}

func speechDuplicateSequence(name string) string {
	return fmt.Sprintf("You already have a sequence called %s. Please choose a different name.", name)
}

func speechNextPart(n int, part model.SegmentRequest) string {
	return fmt.Sprintf("Okay, the %s part is %d bpm for %s. Now tell me the %s part or say 'I'm finished'",
		ordinal(n), part.BPM, spokenSeconds(part.Duration.Seconds()), ordinal(n+1))
}

func speechWhatToCall(parts int) string {
	return fmt.Sprintf("Okay, what should I call this %d-part sequence? For example, say: 'I want to call it Guitar Practice'", parts)
}

func speechSaved(name string) string {
	return fmt.Sprintf("Right, I've saved your sequence %s. You can play it by saying 'Play the custom sequence %s' and you can see what you've got by asking me 'what custom sequences do I have'.", name, name)
}

func speechDeleted(name string) string {
	return "Okay, I deleted the custom sequence " + name
}
