package main

import (
	"math/rand"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The Hundred 2025 group-stage schedule.
var schedule2025 = []ScheduleMatch{
	{MatchID: 1, Date: matchDate("2025-08-05"), Time: "11:00 PM", Team1: "London Spirit", Team2: "Oval Invincibles", Venue: "Lord's, London"},
	{MatchID: 2, Date: matchDate("2025-08-06"), Time: "11:00 PM", Team1: "Manchester Originals", Team2: "Southern Brave", Venue: "Emirates Old Trafford, Manchester"},
	{MatchID: 3, Date: matchDate("2025-08-07"), Time: "11:00 PM", Team1: "Northern Superchargers", Team2: "Welsh Fire", Venue: "Headingley, Leeds"},
	{MatchID: 4, Date: matchDate("2025-08-08"), Time: "11:00 PM", Team1: "Birmingham Phoenix", Team2: "Trent Rockets", Venue: "Edgbaston, Birmingham"},
	{MatchID: 5, Date: matchDate("2025-08-09"), Time: "7:00 PM", Team1: "Oval Invincibles", Team2: "Manchester Originals", Venue: "Kennington Oval, London"},
	{MatchID: 6, Date: matchDate("2025-08-09"), Time: "10:30 PM", Team1: "Welsh Fire", Team2: "London Spirit", Venue: "Sophia Gardens, Cardiff"},
	{MatchID: 7, Date: matchDate("2025-08-10"), Time: "7:00 PM", Team1: "Southern Brave", Team2: "Birmingham Phoenix", Venue: "The Rose Bowl, Southampton"},
	{MatchID: 8, Date: matchDate("2025-08-10"), Time: "10:30 PM", Team1: "Trent Rockets", Team2: "Northern Superchargers", Venue: "Trent Bridge, Nottingham"},
	{MatchID: 9, Date: matchDate("2025-08-11"), Time: "11:00 PM", Team1: "Manchester Originals", Team2: "London Spirit", Venue: "Emirates Old Trafford, Manchester"},
	{MatchID: 10, Date: matchDate("2025-08-12"), Time: "11:00 PM", Team1: "Birmingham Phoenix", Team2: "Oval Invincibles", Venue: "Edgbaston, Birmingham"},
	{MatchID: 11, Date: matchDate("2025-08-13"), Time: "7:30 PM", Team1: "Southern Brave", Team2: "Northern Superchargers", Venue: "The Rose Bowl, Southampton"},
	{MatchID: 12, Date: matchDate("2025-08-13"), Time: "11:00 PM", Team1: "Welsh Fire", Team2: "Manchester Originals", Venue: "Sophia Gardens, Cardiff"},
	{MatchID: 13, Date: matchDate("2025-08-14"), Time: "11:00 PM", Team1: "London Spirit", Team2: "Trent Rockets", Venue: "Lord's, London"},
	{MatchID: 14, Date: matchDate("2025-08-15"), Time: "11:00 PM", Team1: "Northern Superchargers", Team2: "Birmingham Phoenix", Venue: "Headingley, Leeds"},
	{MatchID: 15, Date: matchDate("2025-08-16"), Time: "7:00 PM", Team1: "Trent Rockets", Team2: "Southern Brave", Venue: "Trent Bridge, Nottingham"},
	{MatchID: 16, Date: matchDate("2025-08-16"), Time: "10:30 PM", Team1: "Oval Invincibles", Team2: "Welsh Fire", Venue: "Kennington Oval, London"},
	{MatchID: 17, Date: matchDate("2025-08-17"), Time: "7:00 PM", Team1: "Manchester Originals", Team2: "Northern Superchargers", Venue: "Emirates Old Trafford, Manchester"},
	{MatchID: 18, Date: matchDate("2025-08-17"), Time: "10:30 PM", Team1: "Birmingham Phoenix", Team2: "London Spirit", Venue: "Edgbaston, Birmingham"},
	{MatchID: 19, Date: matchDate("2025-08-18"), Time: "11:00 PM", Team1: "Southern Brave", Team2: "Oval Invincibles", Venue: "The Rose Bowl, Southampton"},
	{MatchID: 20, Date: matchDate("2025-08-19"), Time: "11:00 PM", Team1: "Trent Rockets", Team2: "Manchester Originals", Venue: "Trent Bridge, Nottingham"},
	{MatchID: 21, Date: matchDate("2025-08-20"), Time: "7:30 PM", Team1: "Welsh Fire", Team2: "Southern Brave", Venue: "Sophia Gardens, Cardiff"},
	{MatchID: 22, Date: matchDate("2025-08-20"), Time: "11:00 PM", Team1: "London Spirit", Team2: "Northern Superchargers", Venue: "Lord's, London"},
	{MatchID: 23, Date: matchDate("2025-08-21"), Time: "11:00 PM", Team1: "Oval Invincibles", Team2: "Trent Rockets", Venue: "Kennington Oval, London"},
	{MatchID: 24, Date: matchDate("2025-08-22"), Time: "11:00 PM", Team1: "Birmingham Phoenix", Team2: "Welsh Fire", Venue: "Edgbaston, Birmingham"},
	{MatchID: 25, Date: matchDate("2025-08-23"), Time: "7:00 PM", Team1: "Northern Superchargers", Team2: "Oval Invincibles", Venue: "Headingley, Leeds"},
	{MatchID: 26, Date: matchDate("2025-08-23"), Time: "10:30 PM", Team1: "London Spirit", Team2: "Southern Brave", Venue: "Lord's, London"},
	{MatchID: 27, Date: matchDate("2025-08-24"), Time: "7:00 PM", Team1: "Welsh Fire", Team2: "Trent Rockets", Venue: "Sophia Gardens, Cardiff"},
	{MatchID: 28, Date: matchDate("2025-08-24"), Time: "10:30 PM", Team1: "Manchester Originals", Team2: "Birmingham Phoenix", Venue: "Emirates Old Trafford, Manchester"},
	{MatchID: 29, Date: matchDate("2025-08-25"), Time: "11:00 PM", Team1: "Oval Invincibles", Team2: "London Spirit", Venue: "Kennington Oval, London"},
	{MatchID: 30, Date: matchDate("2025-08-26"), Time: "11:00 PM", Team1: "Northern Superchargers", Team2: "Manchester Originals", Venue: "Headingley, Leeds"},
	{MatchID: 31, Date: matchDate("2025-08-27"), Time: "11:00 PM", Team1: "Trent Rockets", Team2: "Birmingham Phoenix", Venue: "Trent Bridge, Nottingham"},
	{MatchID: 32, Date: matchDate("2025-08-28"), Time: "11:00 PM", Team1: "Southern Brave", Team2: "Welsh Fire", Venue: "The Rose Bowl, Southampton"},
}

// 2025 squads with role classifications.
var squads2025 = []SquadMember{
	{Team: "Oval Invincibles", Player: "Sam Billings", Role: "Batter"},
	{Team: "Oval Invincibles", Player: "Sam Curran", Role: "Bowler"},
	{Team: "Oval Invincibles", Player: "Tom Curran", Role: "Bowler"},
	{Team: "Oval Invincibles", Player: "Will Jacks", Role: "Batter"},
	{Team: "Oval Invincibles", Player: "Rashid Khan", Role: "Bowler"},
	{Team: "Oval Invincibles", Player: "Jordan Cox", Role: "Batter"},
	{Team: "Oval Invincibles", Player: "Saqib Mahmood", Role: "Bowler"},
	{Team: "Oval Invincibles", Player: "Jason Behrendorff", Role: "Bowler"},
	{Team: "Oval Invincibles", Player: "Gus Atkinson", Role: "Bowler"},
	{Team: "Oval Invincibles", Player: "Donovan Ferreira", Role: "All-rounder"},
	{Team: "Oval Invincibles", Player: "Nathan Sowter", Role: "All-rounder"},
	{Team: "Oval Invincibles", Player: "Tawanda Muyeye", Role: "All-rounder"},
	{Team: "Oval Invincibles", Player: "Miles Hammond", Role: "All-rounder"},
	{Team: "Oval Invincibles", Player: "George Scrimshaw", Role: "All-rounder"},
	{Team: "Oval Invincibles", Player: "Zafar Gohar", Role: "All-rounder"},

	{Team: "Birmingham Phoenix", Player: "Liam Livingstone", Role: "Batter"},
	{Team: "Birmingham Phoenix", Player: "Ben Duckett", Role: "Batter"},
	{Team: "Birmingham Phoenix", Player: "Trent Boult", Role: "Bowler"},
	{Team: "Birmingham Phoenix", Player: "Joe Clarke", Role: "Batter"},
	{Team: "Birmingham Phoenix", Player: "Jacob Bethell", Role: "Batter"},
	{Team: "Birmingham Phoenix", Player: "Adam Milne", Role: "Bowler"},
	{Team: "Birmingham Phoenix", Player: "Benny Howell", Role: "All-rounder"},
	{Team: "Birmingham Phoenix", Player: "Tim Southee", Role: "Bowler"},
	{Team: "Birmingham Phoenix", Player: "Dan Mousley", Role: "All-rounder"},
	{Team: "Birmingham Phoenix", Player: "Will Smeed", Role: "Batter"},
	{Team: "Birmingham Phoenix", Player: "Chris Wood", Role: "All-rounder"},
	{Team: "Birmingham Phoenix", Player: "Harry Moore", Role: "All-rounder"},
	{Team: "Birmingham Phoenix", Player: "Tom Helm", Role: "All-rounder"},
	{Team: "Birmingham Phoenix", Player: "Aneurin Donald", Role: "All-rounder"},
	{Team: "Birmingham Phoenix", Player: "Liam Patterson-White", Role: "All-rounder"},
	{Team: "Birmingham Phoenix", Player: "Louis Kimber", Role: "All-rounder"},

	{Team: "London Spirit", Player: "Kane Williamson", Role: "Batter"},
	{Team: "London Spirit", Player: "Jamie Smith", Role: "Batter"},
	{Team: "London Spirit", Player: "Jamie Overton", Role: "Bowler"},
	{Team: "London Spirit", Player: "Liam Dawson", Role: "Bowler"},
	{Team: "London Spirit", Player: "David Warner", Role: "Batter"},
	{Team: "London Spirit", Player: "Daniel Worrall", Role: "Bowler"},
	{Team: "London Spirit", Player: "Richard Gleeson", Role: "Bowler"},
	{Team: "London Spirit", Player: "Luke Wood", Role: "Bowler"},
	{Team: "London Spirit", Player: "Olly Stone", Role: "Bowler"},
	{Team: "London Spirit", Player: "Ashton Turner", Role: "All-rounder"},
	{Team: "London Spirit", Player: "Ollie Pope", Role: "Batter"},
	{Team: "London Spirit", Player: "Jafer Chohan", Role: "All-rounder"},
	{Team: "London Spirit", Player: "Keaton Jennings", Role: "Batter"},
	{Team: "London Spirit", Player: "Wayne Madsen", Role: "Batter"},
	{Team: "London Spirit", Player: "Sean Dickson", Role: "All-rounder"},
	{Team: "London Spirit", Player: "Ryan Higgins", Role: "All-rounder"},

	{Team: "Manchester Originals", Player: "Jos Buttler", Role: "Batter"},
	{Team: "Manchester Originals", Player: "Noor Ahmad", Role: "Bowler"},
	{Team: "Manchester Originals", Player: "Phil Salt", Role: "Batter"},
	{Team: "Manchester Originals", Player: "Rachin Ravindra", Role: "Batter"},
	{Team: "Manchester Originals", Player: "Lewis Gregory", Role: "Bowler"},
	{Team: "Manchester Originals", Player: "Ben McKinney", Role: "Batter"},
	{Team: "Manchester Originals", Player: "Heinrich Klaasen", Role: "Batter"},
	{Team: "Manchester Originals", Player: "George Garton", Role: "Bowler"},
	{Team: "Manchester Originals", Player: "Matthew Hurst", Role: "All-rounder"},
	{Team: "Manchester Originals", Player: "Josh Tongue", Role: "Bowler"},
	{Team: "Manchester Originals", Player: "Scott Currie", Role: "All-rounder"},
	{Team: "Manchester Originals", Player: "Tom Hartley", Role: "Bowler"},
	{Team: "Manchester Originals", Player: "Sonny Baker", Role: "All-rounder"},
	{Team: "Manchester Originals", Player: "Tom Aspinwall", Role: "All-rounder"},
	{Team: "Manchester Originals", Player: "James Anderson", Role: "Bowler"},
	{Team: "Manchester Originals", Player: "Marchant de Lange", Role: "Bowler"},

	{Team: "Southern Brave", Player: "Jofra Archer", Role: "Bowler"},
	{Team: "Southern Brave", Player: "Michael Bracewell", Role: "All-rounder"},
	{Team: "Southern Brave", Player: "James Vince", Role: "Batter"},
	{Team: "Southern Brave", Player: "Chris Jordan", Role: "Bowler"},
	{Team: "Southern Brave", Player: "Tymal Mills", Role: "Bowler"},
	{Team: "Southern Brave", Player: "Leus Du Plooy", Role: "Batter"},
	{Team: "Southern Brave", Player: "Laurie Evans", Role: "Batter"},
	{Team: "Southern Brave", Player: "Craig Overton", Role: "Bowler"},
	{Team: "Southern Brave", Player: "Reece Topley", Role: "Bowler"},
	{Team: "Southern Brave", Player: "Finn Allen", Role: "Batter"},
	{Team: "Southern Brave", Player: "Jordan Thompson", Role: "All-rounder"},
	{Team: "Southern Brave", Player: "Danny Briggs", Role: "Bowler"},
	{Team: "Southern Brave", Player: "James Coles", Role: "All-rounder"},
	{Team: "Southern Brave", Player: "Jason Roy", Role: "Batter"},
	{Team: "Southern Brave", Player: "Tory Albert", Role: "All-rounder"},
	{Team: "Southern Brave", Player: "Hilton Cartwright", Role: "All-rounder"},

	{Team: "Northern Superchargers", Player: "Harry Brook", Role: "Batter"},
	{Team: "Northern Superchargers", Player: "David Miller", Role: "Batter"},
	{Team: "Northern Superchargers", Player: "Adil Rashid", Role: "Bowler"},
	{Team: "Northern Superchargers", Player: "Zak Crawley", Role: "Batter"},
	{Team: "Northern Superchargers", Player: "Mitchell Santner", Role: "Bowler"},
	{Team: "Northern Superchargers", Player: "Dan Lawrence", Role: "Batter"},
	{Team: "Northern Superchargers", Player: "Brydon Carse", Role: "Bowler"},
	{Team: "Northern Superchargers", Player: "Ben Dwarshuis", Role: "Bowler"},
	{Team: "Northern Superchargers", Player: "Matthew Potts", Role: "Bowler"},
	{Team: "Northern Superchargers", Player: "Michael Pepper", Role: "Batter"},
	{Team: "Northern Superchargers", Player: "Dawid Malan", Role: "Batter"},
	{Team: "Northern Superchargers", Player: "Pat Brown", Role: "Bowler"},
	{Team: "Northern Superchargers", Player: "Graham Clark", Role: "All-rounder"},
	{Team: "Northern Superchargers", Player: "Tom Lawes", Role: "All-rounder"},
	{Team: "Northern Superchargers", Player: "James Fuller", Role: "All-rounder"},
	{Team: "Northern Superchargers", Player: "Rocky Flintoff", Role: "All-rounder"},

	{Team: "Trent Rockets", Player: "Joe Root", Role: "Batter"},
	{Team: "Trent Rockets", Player: "David Willey", Role: "Bowler"},
	{Team: "Trent Rockets", Player: "Marcus Stoinis", Role: "Batter"},
	{Team: "Trent Rockets", Player: "Lockie Ferguson", Role: "Bowler"},
	{Team: "Trent Rockets", Player: "Tom Banton", Role: "Batter"},
	{Team: "Trent Rockets", Player: "Max Holden", Role: "Batter"},
	{Team: "Trent Rockets", Player: "George Linde", Role: "Bowler"},
	{Team: "Trent Rockets", Player: "Sam Cook", Role: "Bowler"},
	{Team: "Trent Rockets", Player: "John Turner", Role: "Bowler"},
	{Team: "Trent Rockets", Player: "Adam Hose", Role: "All-rounder"},
	{Team: "Trent Rockets", Player: "Rehan Ahmed", Role: "Bowler"},
	{Team: "Trent Rockets", Player: "Sam Hain", Role: "All-rounder"},
	{Team: "Trent Rockets", Player: "Tom Alsop", Role: "All-rounder"},
	{Team: "Trent Rockets", Player: "Calvin Harrison", Role: "All-rounder"},
	{Team: "Trent Rockets", Player: "Callum Parkinson", Role: "Bowler"},
	{Team: "Trent Rockets", Player: "Ben Sanderson", Role: "Bowler"},

	{Team: "Welsh Fire", Player: "Tom Abell", Role: "All-rounder"},
	{Team: "Welsh Fire", Player: "Chris Woakes", Role: "Bowler"},
	{Team: "Welsh Fire", Player: "Jonny Bairstow", Role: "Batter"},
	{Team: "Welsh Fire", Player: "Steve Smith", Role: "Batter"},
	{Team: "Welsh Fire", Player: "David Payne", Role: "Bowler"},
	{Team: "Welsh Fire", Player: "Tom Kohler-Cadmore", Role: "Batter"},
	{Team: "Welsh Fire", Player: "Paul Walter", Role: "All-rounder"},
	{Team: "Welsh Fire", Player: "Riley Meredith", Role: "Bowler"},
	{Team: "Welsh Fire", Player: "Chris Green", Role: "Bowler"},
	{Team: "Welsh Fire", Player: "Saif Zaib", Role: "All-rounder"},
	{Team: "Welsh Fire", Player: "Luke Wells", Role: "Batter"},
	{Team: "Welsh Fire", Player: "Stephen Eskinazi", Role: "Batter"},
	{Team: "Welsh Fire", Player: "Josh Hull", Role: "Bowler"},
	{Team: "Welsh Fire", Player: "Mason Crane", Role: "Bowler"},
	{Team: "Welsh Fire", Player: "Ajeet Singh Dale", Role: "All-rounder"},
	{Team: "Welsh Fire", Player: "Ben Kellaway", Role: "All-rounder"},
}

func matchDate(s string) datatypes.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

// seedReferenceData fills any empty reference table so the server works
// out of the box: the fixed 2025 schedule and squads, estimated venue
// profiles, estimated player stats, and computed team ratings. Tables
// that already hold data are left alone.
func seedReferenceData(db *gorm.DB) error {
	var count int64

	if err := db.Model(&ScheduleMatch{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		// Insert a copy so gorm writes generated IDs into the copy, not
		// the package-level seed data.
		rows := make([]ScheduleMatch, len(schedule2025))
		copy(rows, schedule2025)
		// Another process may have seeded between the count and the
		// insert; the unique match_id index makes that harmless.
		if err := db.Create(&rows).Error; err != nil && !isUniqueConstraintError(err) {
			return err
		}
	}

	if err := db.Model(&SquadMember{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		rows := make([]SquadMember, len(squads2025))
		copy(rows, squads2025)
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&VenueStat{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		venues := make([]*VenueStat, 0, len(hundredVenues))
		for _, v := range hundredVenues {
			venues = append(venues, estimatedVenueStats(v))
		}
		if err := db.Create(&venues).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&PlayerStat{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := updatePlayerStats(db, "", rng); err != nil {
			return err
		}
	}

	if err := db.Model(&TeamRating{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := updateTeamRatings(db); err != nil {
			return err
		}
	}

	return nil
}
