package dictionary

import "strings"

// themes groups the embedded words by subject for level 1 hints.
// A theme gives no letter cue and contains no dictionary word.
var themes = map[string]string{
	"common connecting words": `ABOUT ABOVE AFTER AGAIN AHEAD ALIKE ALONG AMONG APART ASIDE BEING BELOW EVERY FULLY
		GIVEN LATER MAYBE NEVER OFTEN OTHER UNDER WHILE`,
	"things people do": `ABUSE ADAPT ADMIT ADOPT AGREE ALLOW ALTER APPLY ARGUE ARISE AVOID BEGIN BLAME BLAST
		BLEND BLESS BOAST BOOST BREAK BRING BUILD BURST CARRY CATCH CHASE CHECK CLAIM CLICK
		CLIMB COUNT COVER CRASH CROSS DEALT DELAY DRIFT DRIVE ELECT ENJOY ENTER ERASE EXIST
		FIGHT FORGE GREET GUESS JUDGE KNOCK LAUGH LEARN MATCH OFFER PRESS PRINT PUNCH RAISE
		REACH RELAX REPLY SHAKE SHARE SHIFT SHINE SHOUT SLEEP SMILE SOLVE SPEAK SPELL SPEND
		SPRAY STAND START STUDY SWING TEACH TOUCH TRADE TREAT TRUST VISIT WASTE WATCH WORRY
		WRITE YEARN YIELD`,
	"the animal kingdom": `BEAST CAMEL CRANE EAGLE FLOCK HORSE MOUSE RAVEN ROBIN SHARK SHEEP SNAKE TIGER WHALE
		ZEBRA`,
	"cooking and eating": `APPLE BACON BERRY BREAD CANDY CREAM CRUST DOUGH DRINK FEAST FLOUR FRUIT GRAIN GRAPE
		HONEY JELLY JUICE LEMON LOLLY LUNCH OLIVE ONION PASTA PEACH PIZZA ROAST SALAD SAUCE
		SLICE SNACK SPICE SUGAR TOAST WHEAT`,
	"nature and the outdoors": `BASIN BEACH BLOOM CLIFF COAST CORAL EARTH FIELD FLOOD GRASS HEDGE MAPLE MOUNT OCEAN
		PEARL PLANT RIDGE RIVER SHELL SHORE SLOPE STONE TRAIL TULIP WATER`,
	"weather and the sky": `BLAZE CLOUD COMET FLAME FROST LUNAR ORBIT POLAR SMOKE SOLAR STEAM STORM SUNNY`,
	"anatomy and health": `BEARD BIRTH BLOOD BRAIN CHEEK CHEST ELBOW FEVER HEART JOINT LIVER MOUTH NERVE PULSE
		SPINE THUMB WRIST`,
	"furniture and indoor items": `BENCH CHAIR CLOCK COUCH FLOOR KNIFE LINEN PLATE PORCH SHELF SPOON STAIR STOVE TABLE
		TORCH`,
	"people and roles": `ACTOR ADULT AGENT ANGEL BAKER BRIDE BUYER CHIEF CHILD CLERK COACH CROWD DONOR ELDER
		ENEMY GIANT GUARD GUEST GUIDE HUMAN MAYOR NURSE OWNER PILOT PUPIL QUEEN REBEL RIDER
		RIVAL SCOUT SQUAD TRIBE UNCLE WOMAN YOUTH`,
	"the creative arts": `ALBUM AUDIO DANCE DIARY DRAFT DRAMA DREAM GHOST HUMOR IMAGE MAGIC MODEL MOVIE MUSIC
		NOVEL OPERA PAINT PHOTO PIANO QUOTE SCENE STAGE STORY TITLE VERSE VIDEO VOCAL VOICE`,
	"feelings and moods": `ANGER ANGRY BRAVE CHARM FAITH GRIEF HAPPY LUCKY PEACE PRIDE PROUD SHOCK SILLY`,
	"describing words": `ACUTE ALERT ALIVE ALONE AWARE BASIC BLANK BLIND BRIEF BROAD CHEAP CHILL CIVIC CLEAN
		CLEAR CLOSE CRISP DAILY DIRTY EARLY EMPTY EQUAL EXACT EXTRA FALSE FANCY FINAL FRESH
		GRAND GREAT HARSH HEAVY IDEAL INNER LARGE LOCAL LOOSE MAJOR MINOR MIXED MORAL NOBLE
		OUTER PLAIN PRIME QUICK QUIET RAPID READY RIGHT ROCKY ROUND ROYAL RURAL SHARP SHORT
		SMALL SMART SOLID SPARE STILL SWEET TOXIC UPPER URBAN USUAL VALID VITAL VIVID WHOLE
		YOUNG`,
	"colors and tones":        `AMBER BLACK BROWN FLASH GREEN IVORY LIGHT SHADE WHITE`,
	"time and the calendar":   `CYCLE MARCH MONTH NIGHT PHASE`,
	"numbers and measurement": `BUNCH DEPTH EIGHT FIFTH GRADE INDEX LEVEL LIMIT METER POUND RANGE SCALE SEVEN TOTAL`,
	"work and commerce":       `ASSET AUDIT AWARD BONUS BRAND CARGO LABOR MONEY PENNY PRICE PRIZE VALUE VAULT WORTH`,
	"locations and structures": `ARENA BOOTH CABIN CANAL COURT ENTRY FORUM HOTEL HOUSE LOBBY LODGE PLACE PLAZA RANCH
		REALM SUITE TOWER VENUE`,
	"maps and directions": `ANGLE CHART FRONT NORTH POINT SOUTH WORLD`,
	"travel and vehicles": `BRAKE FERRY FLEET MOTOR PLANE ROUTE SPEED TRACK TRAIN TRUCK WAGON WHEEL YACHT`,
	"science and technology": `ALLOY CABLE FIBER FLUID GRAPH INPUT LASER LOGIC METAL PHONE PIXEL POWER RADAR RADIO
		ROBOT SPARK VALVE VAPOR`,
	"tools and materials": `ALARM ARMOR ARROW BADGE BLADE BLOCK BOARD BRICK BRUSH CHAIN CHALK CLOTH FENCE FRAME
		GLASS GLOBE JEWEL LABEL LAYER PANEL PAPER PATCH PIECE QUILT RIFLE SCREW SLATE STAMP
		STEEL STICK STRAW SWORD`,
	"fashion and apparel": `DRESS GLOVE SCARF SHIRT`,
	"games and athletics": `CHESS MEDAL PITCH RALLY SPORT TRICK`,
	"abstract ideas": `CAUSE DOUBT ERROR EVENT FOCUS FORCE GRACE HABIT IRONY ISSUE PROOF QUEST SHAPE SKILL
		SPACE STYLE TOPIC TREND TRIAL TRUTH UNITY USAGE`,
	"perception":             `AROMA NOISE SCENT SIGHT SOUND TASTE`,
	"society and government": `CLASS CRIME CROWN GROUP ORDER PARTY UNION`,
}

// fallbackTheme covers words loaded from a custom list
const fallbackTheme = "a common word"

var themeOf = func() map[string]string {
	m := make(map[string]string)
	for theme, words := range themes {
		for _, w := range strings.Fields(words) {
			m[w] = theme
		}
	}
	return m
}()

// Category returns the broad theme used for level 1 hints
func Category(word string) string {
	if theme, ok := themeOf[normalize(word)]; ok {
		return theme
	}
	return fallbackTheme
}
