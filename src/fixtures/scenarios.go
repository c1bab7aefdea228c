package fixtures

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casefile-ai/casefile/src/config"
)

// Scenario identifiers for the bundled demo cases.
const (
	ScenarioPoisonedResearcher = "poisoned_researcher"
	ScenarioSabotagedPrototype = "sabotaged_prototype"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// fixtureFile is one generated file. Audio entries ship a placeholder byte
// stream plus a sibling transcript, which is what the transcriber falls back
// to when no speech endpoint is reachable.
type fixtureFile struct {
	kind string // audio, documents or case
	name string
	body string
}

// Write materializes a scenario's audio, document and case fixtures into the
// configured data directories so the three pipeline stages have something to
// chew on out of the box.
func Write(cfg config.DataConfig, scenario string) error {
	files, err := scenarioFiles(scenario)
	if err != nil {
		return err
	}

	for _, f := range files {
		dir, err := dirFor(cfg, f.kind)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", f.kind, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.body), 0o644); err != nil {
			return fmt.Errorf("failed to write fixture %s: %w", f.name, err)
		}
	}

	return nil
}

// Entities returns the personnel roster of a scenario. The dispatcher's
// fallback synthesizer uses it to keep degraded answers on-case.
func Entities(scenario string) []string {
	switch scenario {
	case ScenarioSabotagedPrototype:
		return []string{
			"Victor Krum",
			"Elena Rostova",
			"Kevin Miller",
			"Jennifer Martinez",
		}
	default:
		return []string{
			"Dr. Sarah Chen",
			"Prof. James Mitchell",
			"David Park",
			"Michael Torres",
			"Officer Martinez",
			"Detective Maria Rodriguez",
			"Dr. Lisa Park",
			"Dr. Robert Kane",
		}
	}
}

// Scenarios lists the available scenario identifiers.
func Scenarios() []string {
	return []string{ScenarioPoisonedResearcher, ScenarioSabotagedPrototype}
}

func dirFor(cfg config.DataConfig, kind string) (string, error) {
	switch kind {
	case "audio":
		return cfg.AudioDir, nil
	case "documents":
		return cfg.DocumentsDir, nil
	case "case":
		return cfg.CaseDir, nil
	default:
		return "", fmt.Errorf("unknown fixture kind %q", kind)
	}
}

func scenarioFiles(scenario string) ([]fixtureFile, error) {
	switch scenario {
	case "", ScenarioPoisonedResearcher:
		return poisonedResearcherFiles, nil
	case ScenarioSabotagedPrototype:
		return sabotagedPrototypeFiles, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, scenario)
	}
}

// placeholderAudio stands in for a real recording. The transcriber will fail
// to decode it and read the sibling transcript instead.
const placeholderAudio = "RIFF....WAVEfmt placeholder audio fixture, see the sibling transcript file"

var poisonedResearcherFiles = []fixtureFile{
	{
		kind: "audio",
		name: "security_patrol_log.mp3",
		body: placeholderAudio,
	},
	{
		kind: "audio",
		name: "security_patrol_log_transcript.txt",
		body: `Security patrol log, recorded by Officer Martinez at the Westbrook Research Institute.
Routine sweep of the east wing completed at 11:30 PM, nothing unusual.
At 11:47 PM I observed Dr. Sarah Chen entering Biochemistry Lab 3 carrying a black duffel bag.
She swiped her badge twice before the door released, which struck me as odd since her access was supposed to be day-shift only.
The lights in Lab 3 stayed on until at least 1:20 AM when my shift ended.
At 6:12 AM the morning custodian found Dr. Robert Kane unresponsive at his bench in the same lab and called it in.
Paramedics suspected poisoning. I secured the scene and handed over to Detective Maria Rodriguez.`,
	},
	{
		kind: "audio",
		name: "witness_interview.mp3",
		body: placeholderAudio,
	},
	{
		kind: "audio",
		name: "witness_interview_transcript.txt",
		body: `Interview conducted by Detective Maria Rodriguez with Dr. Lisa Park, Westbrook Research Institute.
Dr. Park states she worked late in the adjacent lab on the night of the incident.
Around 10:30 PM she overheard a heated argument between Prof. James Mitchell and Dr. Robert Kane about unauthorized experiments being run after hours.
Mitchell shouted that Kane was going to get the whole program shut down.
Dr. Park also mentions seeing Michael Torres loitering near the server room around 11:00 PM, though he had no assignment there.
She left the building at 11:15 PM and badged out at the north entrance.`,
	},
	{
		kind: "documents",
		name: "personnel_dossier.txt",
		body: `WESTBROOK RESEARCH INSTITUTE - PERSONNEL DOSSIER

Dr. Robert Kane, Senior Researcher (deceased).
Led the institute's toxicology program. Recently flagged irregularities in grant spending to the board.

Dr. Sarah Chen, Research Scientist.
Finance records show Dr. Sarah Chen accessed the grant financial database on three occasions outside business hours in the past month. Colleagues describe mounting pressure over a rejected funding application.

Prof. James Mitchell, Program Director.
Internal audit notes indicate Prof. James Mitchell authorized unauthorized experiments on restricted compounds without board approval. Witnesses report repeated clashes with Dr. Kane over lab discipline.

David Park, Systems Administrator.
Server room records show David Park accessed the system log archive the morning after the incident and exported several files. Claims it was routine maintenance.

Michael Torres, Laboratory Technician.
No formal infractions. Was seen near the server room the night of the incident outside his assigned area.`,
	},
	{
		kind: "documents",
		name: "access_log.csv",
		body: `timestamp,name,area,action
2026-03-09 22:15,Prof. James Mitchell,Biochemistry Lab 3,entry
2026-03-09 23:05,Michael Torres,Server Room Corridor,entry
2026-03-09 23:15,Dr. Lisa Park,North Entrance,exit
2026-03-09 23:47,Dr. Sarah Chen,Biochemistry Lab 3,entry
2026-03-10 01:22,Dr. Sarah Chen,Biochemistry Lab 3,exit
2026-03-10 06:02,Custodial Staff,Biochemistry Lab 3,entry
2026-03-10 08:41,David Park,System Log Archive,export`,
	},
	{
		kind: "case",
		name: "case_briefing.txt",
		body: `CASE BRIEFING - THE POISONED RESEARCHER

Victim: Dr. Robert Kane, found unresponsive in Biochemistry Lab 3 at 6:12 AM on March 10th.
Cause of death: suspected poisoning, toxin analysis pending.
The victim had recently reported financial irregularities and clashed with colleagues over unauthorized experiments.
Persons of interest: Dr. Sarah Chen, Prof. James Mitchell, David Park, Michael Torres.`,
	},
	{
		kind: "case",
		name: "forensics_report.txt",
		body: `FORENSICS REPORT - CASE 2026-0310

Trace analysis of the victim's coffee mug identified a fast-acting neurotoxin not stocked by the institute's registered inventory.
The toxin matches a compound catalogued in the restricted samples cabinet of Biochemistry Lab 3.
Cabinet access requires a badge with after-hours lab clearance.
A partial fingerprint on the cabinet latch is consistent with a gloved smear; no usable ridge detail.
The victim's workstation shows a deleted folder recovered as "grant_audit_notes".`,
	},
}

var sabotagedPrototypeFiles = []fixtureFile{
	{
		kind: "audio",
		name: "factory_floor_recording.mp3",
		body: placeholderAudio,
	},
	{
		kind: "audio",
		name: "factory_floor_recording_transcript.txt",
		body: `Night shift report, Apex Dynamics assembly hall, recorded by Kevin Miller.
The Apex prototype passed its final calibration at 9:40 PM and the hall was locked down.
At 11:15 PM the motion sensors logged movement near bay two. I saw Victor Krum leaving the prototype lab through the side door, which surprised me because his project access was revoked last week.
When I opened the bay at 5:30 AM the prototype's control board was burned out and the actuator cabling had been cut in three places.
Elena Rostova arrived at 6:00 AM and reported that the master schematics folder was missing from the design vault.
Jennifer Martinez called an emergency meeting at 8:00 AM.`,
	},
	{
		kind: "documents",
		name: "staff_dossier.txt",
		body: `APEX DYNAMICS - STAFF DOSSIER

Victor Krum, Senior Engineer.
Passed over for the prototype lead position in January. Security revoked his prototype lab access last week after a dispute with management. Badge records show Victor Krum accessed the system log terminal the night of the incident.

Elena Rostova, Lead Designer.
Holder of the design vault keys. Reported the master schematics missing. Financial review shows Elena Rostova accessed the project budget ledger twice in the past month, consistent with her role.

Kevin Miller, Night Technician.
On duty the night of the incident. No access to the prototype lab interior.

Jennifer Martinez, Chief Executive.
Authorized an unscheduled demonstration of the prototype for investors, a decision engineering called premature. No record of unauthorized experiments.`,
	},
	{
		kind: "documents",
		name: "badge_log.csv",
		body: `timestamp,name,area,action
2026-05-17 21:40,Elena Rostova,Design Vault,exit
2026-05-17 22:10,Kevin Miller,Assembly Hall,entry
2026-05-17 23:15,Victor Krum,Prototype Lab Side Door,exit
2026-05-17 23:20,Victor Krum,System Log Terminal,access
2026-05-18 05:30,Kevin Miller,Bay Two,entry
2026-05-18 06:00,Elena Rostova,Design Vault,entry`,
	},
	{
		kind: "case",
		name: "incident_briefing.txt",
		body: `INCIDENT BRIEFING - THE SABOTAGED PROTOTYPE

The Apex prototype was sabotaged overnight between 9:40 PM on May 17th and 5:30 AM on May 18th.
Damage: burned control board, cut actuator cabling, missing master schematics.
The incident occurred days before an investor demonstration.
Persons of interest: Victor Krum, Elena Rostova, Kevin Miller.`,
	},
}
